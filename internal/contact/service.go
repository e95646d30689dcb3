package contact

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/internal/auditlog"
	"github.com/sandeshm/portfolio-backend/internal/mailer"
	"github.com/sandeshm/portfolio-backend/utils"
)

var ErrNotFound = errors.New("contact not found")

// ValidationError carries the field-level error list for a 400 response
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string { return "validation failed" }

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const statsCacheKey = "portfolio:contact:stats"

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
// 🎯 Create Contact (public form submission)
// The saved record is returned immediately; both notification emails are
// queued in the background and their outcome never affects the response.
func (s *Service) Create(req *CreateContactRequest) (*Contact, error) {
	if verr := validateCreate(req); verr != nil {
		return nil, verr
	}

	c := &Contact{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Mobile:   strings.TrimSpace(req.Mobile),
		Subject:  strings.TrimSpace(req.Subject),
		Message:  req.Message,
		Status:   StatusPending,
		Priority: PriorityMedium,
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}

	s.queueEmails(c)
	utils.InvalidateCache(context.Background(), statsCacheKey)
	return c, nil
}

func validateCreate(req *CreateContactRequest) *ValidationError {
	var fields []FieldError
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		fields = append(fields, FieldError{Field: "email", Message: "email is required"})
	} else if !emailRe.MatchString(email) {
		fields = append(fields, FieldError{Field: "email", Message: "email is not valid"})
	}
	if strings.TrimSpace(req.Subject) == "" {
		fields = append(fields, FieldError{Field: "subject", Message: "subject is required"})
	}
	if strings.TrimSpace(req.Message) == "" {
		fields = append(fields, FieldError{Field: "message", Message: "message is required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) queueEmails(c *Contact) {
	if s.Queue == nil {
		return
	}

	if s.cfg.NotifyEmail != "" {
		if body, err := mailer.ContactNotification(c.Name, c.Email, c.Subject, c.Message); err == nil {
			s.Queue.Enqueue(mailer.Job{
				To:       []string{s.cfg.NotifyEmail},
				Subject:  "New contact: " + c.Subject,
				HTMLBody: body,
			})
		}
	}

	body, err := mailer.ContactConfirmation(c.Name, c.Subject)
	if err != nil {
		log.Printf("⚠️ Contact confirmation render failed: %v", err)
		return
	}
	s.Queue.Enqueue(mailer.Job{
		To:       []string{c.Email},
		Subject:  "Thanks for reaching out",
		HTMLBody: body,
	})

	if err := s.Repo.MarkEmailSent(c.ID); err != nil {
		log.Printf("⚠️ Failed to mark contact %d email_sent: %v", c.ID, err)
	}
}

// ===========================
// 📄 List, newest first
func (s *Service) List(status string, limit, offset int) ([]Contact, int64, error) {
	if status != "" && !validStatus(status) {
		return nil, 0, &ValidationError{Fields: []FieldError{{Field: "status", Message: "unknown status"}}}
	}
	return s.Repo.List(status, limit, offset)
}

// ===========================
// 🔍 Get by ID
func (s *Service) GetByID(id uint) (*Contact, error) {
	c, err := s.Repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

// ===========================
// 🛠 Admin partial update with status stamping.
// review stamps responded_at, done stamps completed_at; each stamp is set
// once and repeated PATCHes with the same status are idempotent.
func (s *Service) Update(id uint, req *UpdateContactRequest, ip string) (*Contact, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, &ValidationError{Fields: []FieldError{{Field: "status", Message: "unknown status"}}}
		}
		now := time.Now()
		switch *req.Status {
		case StatusReview:
			if c.RespondedAt == nil {
				c.RespondedAt = &now
			}
		case StatusDone:
			if c.CompletedAt == nil {
				c.CompletedAt = &now
			}
		}
		c.Status = *req.Status
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, &ValidationError{Fields: []FieldError{{Field: "priority", Message: "unknown priority"}}}
		}
		c.Priority = *req.Priority
	}
	if req.AdminNotes != nil {
		c.AdminNotes = *req.AdminNotes
	}

	if err := s.Repo.Save(c); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), "CONTACT_UPDATED", map[string]interface{}{
		"contact_id": c.ID,
		"status":     c.Status,
		"priority":   c.Priority,
	}, ip, "success")

	utils.InvalidateCache(context.Background(), statsCacheKey)
	return c, nil
}

// ===========================
// ❌ Delete
func (s *Service) Delete(id uint, ip string) error {
	err := s.Repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), "CONTACT_DELETED", map[string]interface{}{
		"contact_id": id,
	}, ip, "success")

	utils.InvalidateCache(context.Background(), statsCacheKey)
	return nil
}

// ===========================
// 📊 Stats, cached briefly in Redis
func (s *Service) Stats() (*StatsResponse, error) {
	ctx := context.Background()

	var cached StatsResponse
	if utils.GetCachedJSON(ctx, statsCacheKey, &cached) {
		return &cached, nil
	}

	byStatus, total, err := s.Repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	stats := &StatsResponse{Total: total, ByStatus: byStatus}

	utils.CacheJSON(ctx, statsCacheKey, stats, 60*time.Second)
	return stats, nil
}
