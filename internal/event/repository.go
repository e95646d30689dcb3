package event

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrEventFull is returned when the conditional attendee increment
	// matches no row: the event is at capacity.
	ErrEventFull = errors.New("event is full")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Event CRUD
func (r *Repository) Create(e *Event) error {
	return r.DB.Create(e).Error
}

func (r *Repository) GetByID(id uint) (*Event, error) {
	var e Event
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// GetBySlug serves the public read path, so drafts stay invisible here;
// admins reach unpublished events through the admin listing.
func (r *Repository) GetBySlug(slug string) (*Event, error) {
	var e Event
	if err := r.DB.Where("slug = ? AND published = ?", slug, true).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&Event{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Save(e *Event) error {
	return r.DB.Save(e).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ===========================
// 📄 List with filters; admin listing includes drafts and sorts newest first
func (r *Repository) List(filters ListFilters, publishedOnly bool, limit, offset int) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.DB.Model(&Event{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if filters.EventType != "" {
		query = query.Where("event_type = ?", filters.EventType)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.Upcoming != nil {
		if *filters.Upcoming {
			query = query.Where("date >= ?", time.Now())
		} else {
			query = query.Where("date < ?", time.Now())
		}
	}
	if filters.Search != "" {
		if r.DB.Dialector.Name() == "postgres" {
			like := "%" + filters.Search + "%"
			query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
		} else {
			like := "%" + filters.Search + "%"
			query = query.Where("title LIKE ? OR description LIKE ?", like, like)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "date ASC"
	if !publishedOnly {
		order = "date DESC"
	}
	err := query.Order(order).Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

func (r *Repository) ListUpcoming(limit int) ([]Event, error) {
	var events []Event
	err := r.DB.
		Where("published = ? AND date >= ?", true, time.Now()).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *Repository) ListFeatured(limit int) ([]Event, error) {
	var events []Event
	err := r.DB.
		Where("published = ? AND featured = ?", true, true).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// ===========================
// 🎟 Registration, transactional with the attendee counter.
// The counter is incremented with a single conditional UPDATE so two
// concurrent registrations near the capacity boundary cannot both pass:
// whichever commits second matches no row and the whole transaction rolls
// back with ErrEventFull.
func (r *Repository) CreateRegistration(reg *Registration) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Event{}).
			Where("id = ? AND (max_attendees = 0 OR current_attendees < max_attendees)", reg.EventID).
			UpdateColumn("current_attendees", gorm.Expr("current_attendees + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEventFull
		}
		return tx.Create(reg).Error
	})
}

// DeleteRegistration removes the row and decrements the counter, never
// below zero.
func (r *Repository) DeleteRegistration(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var reg Registration
		if err := tx.First(&reg, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Registration{}, id).Error; err != nil {
			return err
		}
		return tx.Model(&Event{}).
			Where("id = ? AND current_attendees > 0", reg.EventID).
			UpdateColumn("current_attendees", gorm.Expr("current_attendees - 1")).Error
	})
}

func (r *Repository) FindRegistration(eventID uint, email string) (*Registration, error) {
	var reg Registration
	err := r.DB.Where("event_id = ? AND email = ?", eventID, email).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *Repository) ListRegistrations(eventID uint, limit, offset int) ([]Registration, int64, error) {
	var regs []Registration
	var total int64

	query := r.DB.Model(&Registration{}).Where("event_id = ?", eventID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("registered_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&regs).Error
	return regs, total, err
}
