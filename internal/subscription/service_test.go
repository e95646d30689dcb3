package subscription

import (
	"fmt"
	"testing"

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
	require.NoError(t, db.AutoMigrate(&Subscription{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	cfg := &config.Config{AppEnv: "test", CORSOrigin: "http://localhost:5173"}
	return NewService(NewRepository(db), nil, auditSvc, cfg)
}

func TestSubscribeCreatesActiveRecord(t *testing.T) {
	svc := setupService(t)

	sub, created, err := svc.Subscribe(&SubscribeRequest{Email: "Ada@Example.com", FirstName: "Ada"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ada@example.com", sub.Email) // normalized
	assert.Equal(t, StatusActive, sub.Status)
	assert.NotEmpty(t, sub.UnsubscribeToken)

	prefs := sub.Preferences.Data()
	assert.True(t, prefs.Newsletters)
	assert.True(t, prefs.ProjectUpdates)
	assert.True(t, prefs.TechInsights)
}

func TestSubscribeActiveDuplicateConflicts(t *testing.T) {
	svc := setupService(t)

	_, _, err := svc.Subscribe(&SubscribeRequest{Email: "ada@example.com"})
	require.NoError(t, err)

	// Same address in different case is still the same subscriber
	_, _, err = svc.Subscribe(&SubscribeRequest{Email: "ADA@example.com"})
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestResubscribeReactivatesSameRecord(t *testing.T) {
	svc := setupService(t)

	sub, _, err := svc.Subscribe(&SubscribeRequest{Email: "ada@example.com"})
	require.NoError(t, err)

	unsubbed, err := svc.Unsubscribe(sub.ID, "too many emails")
	require.NoError(t, err)
	assert.Equal(t, StatusUnsubscribed, unsubbed.Status)
	assert.NotNil(t, unsubbed.UnsubscribedAt)

	again, created, err := svc.Subscribe(&SubscribeRequest{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, sub.ID, again.ID) // same record, not a duplicate
	assert.Equal(t, StatusActive, again.Status)
	assert.Nil(t, again.UnsubscribedAt)
	assert.Empty(t, again.UnsubscribedReason)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	svc := setupService(t)

	_, _, err := svc.Subscribe(&SubscribeRequest{Email: "nope"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, _, err = svc.Subscribe(&SubscribeRequest{Email: ""})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestUnsubscribeByToken(t *testing.T) {
	svc := setupService(t)

	sub, _, err := svc.Subscribe(&SubscribeRequest{Email: "ada@example.com"})
	require.NoError(t, err)

	got, err := svc.UnsubscribeByToken(sub.UnsubscribeToken, "")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, StatusUnsubscribed, got.Status)

	_, err = svc.UnsubscribeByToken("unknown-token", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	svc := setupService(t)

	for i := 0; i < 3; i++ {
		_, _, err := svc.Subscribe(&SubscribeRequest{Email: fmt.Sprintf("u%d@example.com", i)})
		require.NoError(t, err)
	}
	_, err := svc.Unsubscribe(1, "")
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(1), stats.ByStatus[StatusUnsubscribed])
}
