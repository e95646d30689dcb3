package event

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/internal/auditlog"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Event{}, &Registration{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	cfg := &config.Config{AppEnv: "test"}
	return NewService(NewRepository(db), nil, auditSvc, cfg)
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }

func createEvent(t *testing.T, svc *Service, req *EventRequest) *Event {
	t.Helper()
	if req.Title == "" {
		req.Title = "Go Workshop"
	}
	if req.EventType == "" {
		req.EventType = TypeWorkshop
	}
	if req.Date == "" {
		req.Date = time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	}
	e, err := svc.Create(req, "127.0.0.1")
	require.NoError(t, err)
	return e
}

func TestCreateDerivesSlugAndIsFree(t *testing.T) {
	svc := setupService(t)

	e := createEvent(t, svc, &EventRequest{Title: "Intro to Go!"})
	assert.Equal(t, "intro-to-go", e.Slug)
	assert.True(t, e.IsFree)
	assert.False(t, e.Published)
	assert.Nil(t, e.PublishedAt)

	paid := createEvent(t, svc, &EventRequest{Title: "Paid Workshop", Price: floatPtr(499)})
	assert.False(t, paid.IsFree)
}

func TestFirstPublishStampsPublishedAt(t *testing.T) {
	svc := setupService(t)
	e := createEvent(t, svc, &EventRequest{})

	e, err := svc.TogglePublish(e.ID, "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, e.Published)
	require.NotNil(t, e.PublishedAt)
	first := *e.PublishedAt

	// Unpublish and republish: the original stamp survives
	e, err = svc.TogglePublish(e.ID, "127.0.0.1")
	require.NoError(t, err)
	assert.False(t, e.Published)

	e, err = svc.TogglePublish(e.ID, "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, e.PublishedAt.Equal(first))
}

func TestRegisterCapacityBoundary(t *testing.T) {
	svc := setupService(t)
	e := createEvent(t, svc, &EventRequest{MaxAttendees: intPtr(1), Published: boolPtr(true)})

	_, err := svc.Register(e.ID, &RegisterRequest{FullName: "A", Email: "a@x.com"})
	require.NoError(t, err)

	// Second registrant hits the capacity bound
	_, err = svc.Register(e.ID, &RegisterRequest{FullName: "B", Email: "b@x.com"})
	assert.ErrorIs(t, err, ErrEventFull)

	// Freeing the seat lets the next registrant in
	reg, err := svc.CheckRegistration(e.ID, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRegistration(reg.ID, "127.0.0.1"))

	_, err = svc.Register(e.ID, &RegisterRequest{FullName: "B", Email: "b@x.com"})
	require.NoError(t, err)

	got, err := svc.GetBySlug(e.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentAttendees)
}

func TestRegisterCounterMovesByExactlyOne(t *testing.T) {
	svc := setupService(t)
	e := createEvent(t, svc, &EventRequest{MaxAttendees: intPtr(10), Published: boolPtr(true)})

	_, err := svc.Register(e.ID, &RegisterRequest{FullName: "A", Email: "a@x.com"})
	require.NoError(t, err)
	got, err := svc.GetBySlug(e.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentAttendees)

	reg, err := svc.CheckRegistration(e.ID, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRegistration(reg.ID, "127.0.0.1"))

	got, err = svc.GetBySlug(e.Slug)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentAttendees)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := setupService(t)
	e := createEvent(t, svc, &EventRequest{Published: boolPtr(true)})

	_, err := svc.Register(e.ID, &RegisterRequest{FullName: "A", Email: "a@x.com"})
	require.NoError(t, err)

	// Case difference does not evade the uniqueness rule
	_, err = svc.Register(e.ID, &RegisterRequest{FullName: "A again", Email: "A@X.com"})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterRejectsUnpublishedAndMissingEvent(t *testing.T) {
	svc := setupService(t)
	draft := createEvent(t, svc, &EventRequest{})

	_, err := svc.Register(draft.ID, &RegisterRequest{FullName: "A", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Register(999, &RegisterRequest{FullName: "A", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := setupService(t)
	e := createEvent(t, svc, &EventRequest{Published: boolPtr(true)})

	_, err := svc.Register(e.ID, &RegisterRequest{FullName: "", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	_, err = svc.Register(e.ID, &RegisterRequest{FullName: "A", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)
}

func TestRegisterUnlimitedWhenMaxZero(t *testing.T) {
	svc := setupService(t)
	e := createEvent(t, svc, &EventRequest{Published: boolPtr(true)}) // maxAttendees defaults to 0

	for i := 0; i < 5; i++ {
		_, err := svc.Register(e.ID, &RegisterRequest{FullName: "X", Email: fmt.Sprintf("u%d@x.com", i)})
		require.NoError(t, err)
	}

	got, err := svc.GetBySlug(e.Slug)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CurrentAttendees)
}

func TestCheckRegistrationIsPureRead(t *testing.T) {
	svc := setupService(t)
	e := createEvent(t, svc, &EventRequest{Published: boolPtr(true)})

	_, err := svc.CheckRegistration(e.ID, "a@x.com")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	_, err = svc.Register(e.ID, &RegisterRequest{FullName: "A", Email: "a@x.com"})
	require.NoError(t, err)

	reg, err := svc.CheckRegistration(e.ID, "A@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.ConfirmationCode)

	got, err := svc.GetBySlug(e.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentAttendees) // unchanged by the check
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	svc := setupService(t)
	draft := createEvent(t, svc, &EventRequest{})

	_, err := svc.GetBySlug(draft.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	published, err := svc.TogglePublish(draft.ID, "127.0.0.1")
	require.NoError(t, err)

	got, err := svc.GetBySlug(published.Slug)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestListPagination(t *testing.T) {
	svc := setupService(t)

	for i := 0; i < 15; i++ {
		createEvent(t, svc, &EventRequest{
			Title:     fmt.Sprintf("Event %02d", i),
			Published: boolPtr(true),
			Date:      time.Now().Add(time.Duration(i+1) * time.Hour).Format(time.RFC3339),
		})
	}

	page1, total, err := svc.List(ListFilters{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page1, 10)

	page2, total, err := svc.List(ListFilters{}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page2, 5)
}

func TestListFilters(t *testing.T) {
	svc := setupService(t)

	createEvent(t, svc, &EventRequest{Title: "Past Webinar", EventType: TypeWebinar, Published: boolPtr(true),
		Date: time.Now().Add(-24 * time.Hour).Format(time.RFC3339)})
	createEvent(t, svc, &EventRequest{Title: "Future Workshop", EventType: TypeWorkshop, Published: boolPtr(true)})
	createEvent(t, svc, &EventRequest{Title: "Hidden Draft"})

	upcoming := true
	events, total, err := svc.List(ListFilters{Upcoming: &upcoming}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "Future Workshop", events[0].Title)

	events, total, err = svc.List(ListFilters{EventType: TypeWebinar}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Past Webinar", events[0].Title)

	// Drafts only show up on the admin listing
	_, adminTotal, err := svc.ListAdmin(ListFilters{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), adminTotal)
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(&EventRequest{EventType: TypeWebinar, Date: time.Now().Format(time.RFC3339)}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Create(&EventRequest{Title: "X", EventType: "party", Date: time.Now().Format(time.RFC3339)}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.Create(&EventRequest{Title: "X", EventType: TypeWebinar, Date: "tomorrow"}, "127.0.0.1")
	assert.Error(t, err)
}

func TestUpdateRejectsCapacityBelowRegistrations(t *testing.T) {
	svc := setupService(t)
	e := createEvent(t, svc, &EventRequest{MaxAttendees: intPtr(5), Published: boolPtr(true)})

	_, err := svc.Register(e.ID, &RegisterRequest{FullName: "A", Email: "a@x.com"})
	require.NoError(t, err)
	_, err = svc.Register(e.ID, &RegisterRequest{FullName: "B", Email: "b@x.com"})
	require.NoError(t, err)

	_, err = svc.Update(e.ID, &EventRequest{MaxAttendees: intPtr(1)}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrCapacityBelowCount)

	// Shrinking to the registered count and lifting the cap stay legal
	_, err = svc.Update(e.ID, &EventRequest{MaxAttendees: intPtr(2)}, "127.0.0.1")
	require.NoError(t, err)
	_, err = svc.Update(e.ID, &EventRequest{MaxAttendees: intPtr(0)}, "127.0.0.1")
	require.NoError(t, err)
}

func TestSlugConflict(t *testing.T) {
	svc := setupService(t)

	createEvent(t, svc, &EventRequest{Title: "Same Name"})
	_, err := svc.Create(&EventRequest{Title: "Same Name", EventType: TypeWebinar,
		Date: time.Now().Format(time.RFC3339)}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrSlugConflict)
}
