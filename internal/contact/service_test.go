package contact

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/internal/auditlog"
	"github.com/sandeshm/portfolio-backend/internal/mailer"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Contact{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	cfg := &config.Config{AppEnv: "test"}
	return NewService(NewRepository(db), nil, auditSvc, cfg)
}

func validRequest() *CreateContactRequest {
	return &CreateContactRequest{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Collaboration",
		Message: "I have a project in mind.",
	}
}

func TestCreateDefaultsToPendingMedium(t *testing.T) {
	svc := setupService(t)

	c, err := svc.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, PriorityMedium, c.Priority)
	assert.NotZero(t, c.ID)
}

type nopSender struct{}

func (nopSender) Send(to []string, subject, htmlBody string) error { return nil }

func TestCreateStampsEmailSentWhenQueued(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Contact{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	cfg := &config.Config{AppEnv: "test", NotifyEmail: "owner@example.com"}
	queue := mailer.NewQueue(cfg, nopSender{})
	svc := NewService(NewRepository(db), queue, auditSvc, cfg)

	c, err := svc.Create(validRequest())
	require.NoError(t, err)

	// emailSent means "acknowledgment handed to the queue", stamped at
	// enqueue time, before any delivery attempt
	got, err := svc.GetByID(c.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailSent)
	require.NotNil(t, got.EmailSentAt)
}

func TestCreateMissingEmailNamesField(t *testing.T) {
	svc := setupService(t)

	req := validRequest()
	req.Email = ""
	_, err := svc.Create(req)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "email")
	assert.Len(t, verr.Fields, 1)
}

func TestCreateInvalidEmailRejected(t *testing.T) {
	svc := setupService(t)

	req := validRequest()
	req.Email = "not-an-email"
	_, err := svc.Create(req)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Fields[0].Field)
}

func TestUpdateStampsRespondedAtOnce(t *testing.T) {
	svc := setupService(t)
	c, err := svc.Create(validRequest())
	require.NoError(t, err)

	review := StatusReview
	updated, err := svc.Update(c.ID, &UpdateContactRequest{Status: &review}, "127.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, updated.RespondedAt)
	first := *updated.RespondedAt

	// Repeating the same transition keeps the original stamp
	updated, err = svc.Update(c.ID, &UpdateContactRequest{Status: &review}, "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, updated.RespondedAt.Equal(first))
}

func TestUpdateStampsCompletedAtOnDone(t *testing.T) {
	svc := setupService(t)
	c, err := svc.Create(validRequest())
	require.NoError(t, err)

	done := StatusDone
	updated, err := svc.Update(c.ID, &UpdateContactRequest{Status: &done}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt)
	assert.Nil(t, updated.RespondedAt)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc := setupService(t)
	c, err := svc.Create(validRequest())
	require.NoError(t, err)

	bogus := "archived"
	_, err = svc.Update(c.ID, &UpdateContactRequest{Status: &bogus}, "127.0.0.1")

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestGetByIDNotFound(t *testing.T) {
	svc := setupService(t)
	_, err := svc.GetByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteThenGet(t *testing.T) {
	svc := setupService(t)
	c, err := svc.Create(validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(c.ID, "127.0.0.1"))
	_, err = svc.GetByID(c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(c.ID, "127.0.0.1"), ErrNotFound)
}

func TestStatsCountsByStatus(t *testing.T) {
	svc := setupService(t)

	for i := 0; i < 3; i++ {
		req := validRequest()
		req.Email = fmt.Sprintf("user%d@example.com", i)
		_, err := svc.Create(req)
		require.NoError(t, err)
	}
	done := StatusDone
	_, err := svc.Update(1, &UpdateContactRequest{Status: &done}, "127.0.0.1")
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[StatusPending])
	assert.Equal(t, int64(1), stats.ByStatus[StatusDone])
}

func TestListFiltersByStatus(t *testing.T) {
	svc := setupService(t)

	for i := 0; i < 2; i++ {
		req := validRequest()
		req.Email = fmt.Sprintf("user%d@example.com", i)
		_, err := svc.Create(req)
		require.NoError(t, err)
	}

	contacts, total, err := svc.List(StatusPending, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, contacts, 2)

	_, _, err = svc.List("bogus", 10, 0)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}
