package admin

import (
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/internal/auditlog"
)

func setupService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&AdminUser{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	return NewService(NewRepository(db), auditSvc, cfg)
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:        "test",
		AdminName:     "Sandesh",
		AdminEmail:    "Admin@Example.com",
		AdminPassword: "s3cret-password",
		JWTSecret:     "test-secret",
		JWTTTLHours:   24,
	}
}

func TestSeedCreatesAdminOnce(t *testing.T) {
	svc := setupService(t, testConfig())

	require.NoError(t, svc.Seed())
	count, err := svc.Repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	a, err := svc.Repo.GetByEmail("admin@example.com") // stored lowercase
	require.NoError(t, err)
	assert.Equal(t, "Sandesh", a.Name)
	assert.NotEqual(t, "s3cret-password", a.PasswordHash)

	// A second boot leaves the seeded account alone
	require.NoError(t, svc.Seed())
	count, err = svc.Repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSeedSkipsWithoutCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.AdminEmail = ""
	svc := setupService(t, cfg)

	require.NoError(t, svc.Seed())
	count, err := svc.Repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLoginIssuesToken(t *testing.T) {
	cfg := testConfig()
	svc := setupService(t, cfg)
	require.NoError(t, svc.Seed())

	resp, err := svc.Login(&LoginRequest{Email: "ADMIN@example.com", Password: "s3cret-password"}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotNil(t, resp.Admin.LastLoginAt)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(resp.Admin.ID), claims["admin_id"])
	assert.Equal(t, "admin@example.com", claims["email"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := setupService(t, testConfig())
	require.NoError(t, svc.Seed())

	_, err := svc.Login(&LoginRequest{Email: "admin@example.com", Password: "wrong"}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts fail the same way as wrong passwords
	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "s3cret-password"}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
