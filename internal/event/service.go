package event

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/internal/auditlog"
	"github.com/sandeshm/portfolio-backend/internal/mailer"
	"github.com/sandeshm/portfolio-backend/utils"
)

var (
	ErrNotFound             = errors.New("event not found")
	ErrSlugConflict         = errors.New("an event with this slug already exists")
	ErrInvalid              = errors.New("title, eventType and date are required")
	ErrInvalidType          = errors.New("unknown event type")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("this email is already registered for the event")
	ErrInvalidRegistration  = errors.New("fullName and a valid email are required")
	ErrCapacityBelowCount   = errors.New("maxAttendees cannot be lower than currentAttendees")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	Repo     *Repository
	Queue    *mailer.Queue
	AuditSvc auditlog.Service
	cfg      *config.Config
	payments *razorpay.Client
}

func NewService(repo *Repository, queue *mailer.Queue, auditSvc auditlog.Service, cfg *config.Config) *Service {
	var client *razorpay.Client
	if cfg.RazorpayKey != "" && cfg.RazorpaySecret != "" {
		client = razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret)
	}
	return &Service{Repo: repo, Queue: queue, AuditSvc: auditSvc, cfg: cfg, payments: client}
}

// ===========================
// 🎯 Create Event. Slug derives from the title, isFree derives from price.
func (s *Service) Create(req *EventRequest, ip string) (*Event, error) {
	if strings.TrimSpace(req.Title) == "" || req.EventType == "" || req.Date == "" {
		return nil, ErrInvalid
	}
	if !validEventType(req.EventType) {
		return nil, ErrInvalidType
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, errors.New("invalid date format. Use RFC3339")
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	exists, err := s.Repo.SlugExists(slug, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugConflict
	}

	e := &Event{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		EventType:   req.EventType,
		Category:    req.Category,
		Date:        date,
		Duration:    req.Duration,
	}
	if req.Price != nil {
		e.Price = *req.Price
	}
	if req.MaxAttendees != nil {
		e.MaxAttendees = *req.MaxAttendees
	}
	if req.Featured != nil {
		e.Featured = *req.Featured
	}
	e.IsFree = e.Price == 0
	if req.Published != nil && *req.Published {
		e.Published = true
		now := time.Now()
		e.PublishedAt = &now
	}

	if err := s.Repo.Create(e); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), "EVENT_CREATED", map[string]interface{}{
		"event_id": e.ID,
		"slug":     e.Slug,
	}, ip, "success")
	return e, nil
}

// ===========================
// 🛠 Update Event
func (s *Service) Update(id uint, req *EventRequest, ip string) (*Event, error) {
	e, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		e.Title = req.Title
	}
	if slug := strings.TrimSpace(req.Slug); slug != "" && slug != e.Slug {
		exists, err := s.Repo.SlugExists(slug, e.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSlugConflict
		}
		e.Slug = slug
	}
	if req.Description != "" {
		e.Description = req.Description
	}
	if req.EventType != "" {
		if !validEventType(req.EventType) {
			return nil, ErrInvalidType
		}
		e.EventType = req.EventType
	}
	if req.Category != "" {
		e.Category = req.Category
	}
	if req.Date != "" {
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, errors.New("invalid date format. Use RFC3339")
		}
		e.Date = date
	}
	if req.Duration != "" {
		e.Duration = req.Duration
	}
	if req.Price != nil {
		e.Price = *req.Price
	}
	if req.MaxAttendees != nil {
		// Shrinking below the registered count would wedge the capacity
		// guard into reporting the event permanently full
		if *req.MaxAttendees != 0 && *req.MaxAttendees < e.CurrentAttendees {
			return nil, ErrCapacityBelowCount
		}
		e.MaxAttendees = *req.MaxAttendees
	}
	if req.Featured != nil {
		e.Featured = *req.Featured
	}
	e.IsFree = e.Price == 0

	if err := s.Repo.Save(e); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), "EVENT_UPDATED", map[string]interface{}{
		"event_id": e.ID,
		"slug":     e.Slug,
	}, ip, "success")
	return e, nil
}

func (s *Service) getByID(id uint) (*Event, error) {
	e, err := s.Repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return e, err
}

// ===========================
// 🔁 Publish / Feature toggles. The first publish stamps publishedAt.
func (s *Service) TogglePublish(id uint, ip string) (*Event, error) {
	e, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	e.Published = !e.Published
	if e.Published && e.PublishedAt == nil {
		now := time.Now()
		e.PublishedAt = &now
	}
	if err := s.Repo.Save(e); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), "EVENT_PUBLISH_TOGGLED", map[string]interface{}{
		"event_id":  e.ID,
		"published": e.Published,
	}, ip, "success")
	return e, nil
}

func (s *Service) ToggleFeatured(id uint, ip string) (*Event, error) {
	e, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	e.Featured = !e.Featured
	if err := s.Repo.Save(e); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), "EVENT_FEATURE_TOGGLED", map[string]interface{}{
		"event_id": e.ID,
		"featured": e.Featured,
	}, ip, "success")
	return e, nil
}

// ===========================
// 📄 Reads
func (s *Service) List(filters ListFilters, limit, offset int) ([]Event, int64, error) {
	return s.Repo.List(filters, true, limit, offset)
}

func (s *Service) ListAdmin(filters ListFilters, limit, offset int) ([]Event, int64, error) {
	return s.Repo.List(filters, false, limit, offset)
}

func (s *Service) Upcoming(limit int) ([]Event, error) {
	if limit < 1 {
		limit = 5
	}
	return s.Repo.ListUpcoming(limit)
}

func (s *Service) Featured(limit int) ([]Event, error) {
	if limit < 1 {
		limit = 3
	}
	return s.Repo.ListFeatured(limit)
}

func (s *Service) GetBySlug(slug string) (*Event, error) {
	e, err := s.Repo.GetBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return e, err
}

// ===========================
// ❌ Delete Event. Registrations keep their rows (no cascade); they point
// at a gone event and are cleaned up by the admin listing.
func (s *Service) Delete(id uint, ip string) error {
	err := s.Repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), "EVENT_DELETED", map[string]interface{}{
		"event_id": id,
	}, ip, "success")
	return nil
}

// ===========================
// 🎟 Register for an event.
// Rejections: unknown/unpublished event, duplicate (event, email) pair,
// event at capacity. The insert and the counter increment commit in one
// transaction. Paid events additionally get a Razorpay order so the
// frontend can launch checkout.
func (s *Service) Register(eventID uint, req *RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.FullName) == "" || !emailRe.MatchString(email) {
		return nil, ErrInvalidRegistration
	}

	e, err := s.Repo.GetByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !e.Published {
		return nil, ErrNotFound
	}

	if _, err := s.Repo.FindRegistration(eventID, email); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reg := &Registration{
		EventID:          eventID,
		FullName:         strings.TrimSpace(req.FullName),
		Email:            email,
		Phone:            req.Phone,
		Company:          req.Company,
		JobTitle:         req.JobTitle,
		Notes:            req.Notes,
		Status:           RegStatusConfirmed,
		ConfirmationCode: uuid.NewString(),
	}

	resp := &RegisterResponse{Registration: reg}
	if e.Price > 0 {
		reg.Status = RegStatusPending // confirmed once payment completes
		orderID, amountPaise := s.createPaymentOrder(e, email)
		reg.PaymentOrderID = orderID
		resp.OrderID = orderID
		resp.RazorpayKey = s.cfg.RazorpayKey
		resp.AmountPaise = amountPaise
	}

	if err := s.Repo.CreateRegistration(reg); err != nil {
		if errors.Is(err, ErrEventFull) {
			return nil, ErrEventFull
		}
		return nil, err
	}

	s.queueConfirmation(reg, e)
	return resp, nil
}

// createPaymentOrder is best-effort: without keys or on provider errors
// the registration proceeds with an empty order id and the failure is
// logged for manual follow-up.
func (s *Service) createPaymentOrder(e *Event, email string) (string, int) {
	amountPaise := int(e.Price * 100)
	if s.payments == nil {
		log.Printf("⚠️ Razorpay not configured, paid registration for event %d proceeds without order", e.ID)
		return "", amountPaise
	}

	order, err := s.payments.Order.Create(map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"event_id": e.ID,
			"email":    email,
		},
	}, nil)
	if err != nil {
		log.Printf("❌ Razorpay order creation failed for event %d: %v", e.ID, err)
		return "", amountPaise
	}

	orderID, ok := order["id"].(string)
	if !ok {
		log.Printf("❌ Unable to extract order_id from Razorpay response for event %d", e.ID)
		return "", amountPaise
	}
	return orderID, amountPaise
}

func (s *Service) queueConfirmation(reg *Registration, e *Event) {
	if s.Queue == nil {
		return
	}
	body, err := mailer.RegistrationConfirmation(reg.FullName, e.Title, e.Date.Format("Jan 2, 2006 15:04 MST"), reg.ConfirmationCode)
	if err != nil {
		log.Printf("⚠️ Registration confirmation render failed: %v", err)
		return
	}
	s.Queue.Enqueue(mailer.Job{
		To:       []string{reg.Email},
		Subject:  "Registration confirmed: " + e.Title,
		HTMLBody: body,
	})
}

// ===========================
// 🔍 CheckRegistration is a pure read
func (s *Service) CheckRegistration(eventID uint, email string) (*Registration, error) {
	reg, err := s.Repo.FindRegistration(eventID, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRegistrationNotFound
	}
	return reg, err
}

// ===========================
// 📄 Admin registration management
func (s *Service) ListRegistrations(eventID uint, limit, offset int) ([]Registration, int64, error) {
	return s.Repo.ListRegistrations(eventID, limit, offset)
}

func (s *Service) DeleteRegistration(id uint, ip string) error {
	err := s.Repo.DeleteRegistration(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRegistrationNotFound
	}
	if err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), "REGISTRATION_DELETED", map[string]interface{}{
		"registration_id": id,
	}, ip, "success")
	return nil
}
