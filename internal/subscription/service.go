package subscription

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/internal/auditlog"
	"github.com/sandeshm/portfolio-backend/internal/mailer"
)

var (
	ErrNotFound          = errors.New("subscription not found")
	ErrAlreadySubscribed = errors.New("email is already subscribed")
	ErrInvalidEmail      = errors.New("a valid email is required")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	Repo     *Repository
	Queue    *mailer.Queue
	AuditSvc auditlog.Service
	cfg      *config.Config
}

func NewService(repo *Repository, queue *mailer.Queue, auditSvc auditlog.Service, cfg *config.Config) *Service {
	return &Service{Repo: repo, Queue: queue, AuditSvc: auditSvc, cfg: cfg}
}

// ===========================
// 🎯 Subscribe
// One record per normalized email: an active duplicate is a conflict, a
// dormant record is reactivated in place, anything else is created fresh.
// The welcome mail is queued; its outcome never fails the request.
func (s *Service) Subscribe(req *SubscribeRequest) (*Subscription, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !emailRe.MatchString(email) {
		return nil, false, ErrInvalidEmail
	}

	existing, err := s.Repo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if existing != nil {
		if existing.Status == StatusActive {
			return nil, false, ErrAlreadySubscribed
		}
		// Reactivate in place, clearing unsubscribe metadata
		existing.Status = StatusActive
		existing.UnsubscribedAt = nil
		existing.UnsubscribedReason = ""
		if req.FirstName != "" {
			existing.FirstName = req.FirstName
		}
		if req.LastName != "" {
			existing.LastName = req.LastName
		}
		if req.Preferences != nil {
			existing.Preferences = datatypes.NewJSONType(*req.Preferences)
		}
		if err := s.Repo.Save(existing); err != nil {
			return nil, false, err
		}
		s.queueWelcome(existing)
		return existing, false, nil
	}

	prefs := defaultPreferences()
	if req.Preferences != nil {
		prefs = *req.Preferences
	}
	source := req.Source
	if source == "" {
		source = "website"
	}

	sub := &Subscription{
		Email:            email,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Status:           StatusActive,
		Source:           source,
		Preferences:      datatypes.NewJSONType(prefs),
		UnsubscribeToken: uuid.NewString(),
	}
	if err := s.Repo.Create(sub); err != nil {
		return nil, false, err
	}

	s.queueWelcome(sub)
	return sub, true, nil
}

func (s *Service) queueWelcome(sub *Subscription) {
	if s.Queue == nil {
		return
	}
	unsubURL := fmt.Sprintf("%s/api/v1/subscription/unsubscribe?token=%s", s.cfg.CORSOrigin, sub.UnsubscribeToken)
	body, err := mailer.WelcomeSubscriber(sub.FirstName, unsubURL)
	if err != nil {
		log.Printf("⚠️ Welcome email render failed: %v", err)
		return
	}
	s.Queue.Enqueue(mailer.Job{
		To:       []string{sub.Email},
		Subject:  "Welcome to the newsletter",
		HTMLBody: body,
	})
}

// ===========================
// 🚪 Unsubscribe by ID (admin or authenticated flows)
func (s *Service) Unsubscribe(id uint, reason string) (*Subscription, error) {
	sub, err := s.Repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.markUnsubscribed(sub, reason)
	if err := s.Repo.Save(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// UnsubscribeByToken backs the one-click link embedded in every mail
func (s *Service) UnsubscribeByToken(token, reason string) (*Subscription, error) {
	sub, err := s.Repo.FindByToken(token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.markUnsubscribed(sub, reason)
	if err := s.Repo.Save(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) markUnsubscribed(sub *Subscription, reason string) {
	if sub.Status == StatusUnsubscribed {
		return
	}
	now := time.Now()
	sub.Status = StatusUnsubscribed
	sub.UnsubscribedAt = &now
	sub.UnsubscribedReason = reason
}

// ===========================
// 🔁 Reactivate
func (s *Service) Reactivate(id uint) (*Subscription, error) {
	sub, err := s.Repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sub.Status = StatusActive
	sub.UnsubscribedAt = nil
	sub.UnsubscribedReason = ""
	if err := s.Repo.Save(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ===========================
// 📄 List / ❌ Delete
func (s *Service) List(status string, limit, offset int) ([]Subscription, int64, error) {
	return s.Repo.List(status, limit, offset)
}

func (s *Service) Delete(id uint, ip string) error {
	err := s.Repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.AuditSvc.LogAction(context.Background(), "SUBSCRIPTION_DELETED", map[string]interface{}{
		"subscription_id": id,
	}, ip, "success")
	return nil
}

// ===========================
// 📊 Stats
func (s *Service) Stats() (*StatsResponse, error) {
	byStatus, total, err := s.Repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	return &StatsResponse{
		Total:    total,
		Active:   byStatus[StatusActive],
		ByStatus: byStatus,
	}, nil
}
