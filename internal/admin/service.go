package admin

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/internal/auditlog"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
	cfg      *config.Config
}

func NewService(repo *Repository, auditSvc auditlog.Service, cfg *config.Config) *Service {
	return &Service{Repo: repo, AuditSvc: auditSvc, cfg: cfg}
}

// ===========================
// 🌱 Seed ensures the admin account from the environment exists. Runs at
// boot; an already-seeded database is left alone.
func (s *Service) Seed() error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		log.Println("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	count, err := s.Repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	a := &AdminUser{
		Name:         s.cfg.AdminName,
		Email:        strings.ToLower(s.cfg.AdminEmail),
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(a); err != nil {
		return err
	}
	log.Printf("✅ Admin account seeded for %s", a.Email)
	return nil
}

// ===========================
// 🔐 Login verifies the password and issues a JWT carrying admin_id.
// Failures are audited with the attempted email but never the password.
func (s *Service) Login(req *LoginRequest, ip string) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	a, err := s.Repo.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.auditLogin(email, ip, "failure")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		s.auditLogin(email, ip, "failure")
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWTTTLHours) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": a.ID,
		"email":    a.Email,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	a.LastLoginAt = &now
	if err := s.Repo.Save(a); err != nil {
		log.Printf("⚠️ Failed to record last login for admin %d: %v", a.ID, err)
	}

	s.auditLogin(email, ip, "success")
	return &LoginResponse{Token: signed, ExpiresAt: expiresAt, Admin: a}, nil
}

func (s *Service) auditLogin(email, ip, status string) {
	s.AuditSvc.LogAction(context.Background(), "ADMIN_LOGIN", map[string]interface{}{
		"email": email,
	}, ip, status)
}

// Me returns the authenticated admin's profile
func (s *Service) Me(id uint) (*AdminUser, error) {
	return s.Repo.GetByID(id)
}
