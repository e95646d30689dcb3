package event

import (
	"time"
)

const (
	TypeWebinar     = "webinar"
	TypeWorkshop    = "workshop"
	TypeOfficeHours = "office-hours"
	TypeConference  = "conference"
)

const (
	RegStatusPending   = "pending"
	RegStatusConfirmed = "confirmed"
	RegStatusCancelled = "cancelled"
	RegStatusAttended  = "attended"
)

// ============================
// 🔷 GORM Event Model
// currentAttendees never exceeds maxAttendees when maxAttendees > 0; the
// counter only moves through the conditional updates in the repository.
// PublishedAt is stamped on the first publish, not at creation: events are
// drafted ahead of announcement (blogs deliberately differ, see that model).
type Event struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug             string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description      string     `gorm:"type:text" json:"description"`
	EventType        string     `gorm:"type:varchar(50);not null;index" json:"eventType"`
	Category         string     `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Date             time.Time  `gorm:"not null;index" json:"date"`
	Duration         string     `gorm:"type:varchar(64)" json:"duration"`
	Price            float64    `gorm:"default:0" json:"price"`
	MaxAttendees     int        `gorm:"default:0" json:"maxAttendees"`
	CurrentAttendees int        `gorm:"default:0" json:"currentAttendees"`
	IsFree           bool       `gorm:"default:true" json:"isFree"`
	Published        bool       `gorm:"default:false;index" json:"published"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty"`
	Featured         bool       `gorm:"default:false;index" json:"featured"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ============================
// 🔷 GORM Event Registration Model
// Unique per (event_id, email); holds a non-owning reference to Event.
type Registration struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	EventID          uint      `gorm:"not null;index:idx_event_email,unique" json:"eventId"`
	FullName         string    `gorm:"type:varchar(255);not null" json:"fullName"`
	Email            string    `gorm:"type:varchar(255);not null;index:idx_event_email,unique" json:"email"`
	Phone            string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Company          string    `gorm:"type:varchar(255)" json:"company,omitempty"`
	JobTitle         string    `gorm:"type:varchar(255)" json:"jobTitle,omitempty"`
	Notes            string    `gorm:"type:text" json:"notes,omitempty"`
	Status           string    `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	ConfirmationCode string    `gorm:"type:varchar(64)" json:"confirmationCode"`
	PaymentOrderID   string    `gorm:"type:varchar(128)" json:"paymentOrderId,omitempty"`
	RegisteredAt     time.Time `gorm:"autoCreateTime" json:"registeredAt"`
}

// ============================
// 🟡 Create / Update Event Request (admin)
type EventRequest struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	EventType    string   `json:"eventType"`
	Category     string   `json:"category"`
	Date         string   `json:"date"` // RFC3339
	Duration     string   `json:"duration"`
	Price        *float64 `json:"price,omitempty"`
	MaxAttendees *int     `json:"maxAttendees,omitempty"`
	Featured     *bool    `json:"featured,omitempty"`
	Published    *bool    `json:"published,omitempty"`
}

// 🟡 Register Request (public)
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	JobTitle string `json:"jobTitle"`
	Notes    string `json:"notes"`
}

// RegisterResponse includes the payment order for paid events
type RegisterResponse struct {
	Registration *Registration `json:"registration"`
	OrderID      string        `json:"orderId,omitempty"`
	RazorpayKey  string        `json:"razorpayKey,omitempty"`
	AmountPaise  int           `json:"amountPaise,omitempty"`
}

// ListFilters narrows the event list queries
type ListFilters struct {
	EventType string
	Category  string
	Featured  *bool
	Upcoming  *bool // true → date >= now, false → date < now
	Search    string
}

func validEventType(t string) bool {
	switch t {
	case TypeWebinar, TypeWorkshop, TypeOfficeHours, TypeConference:
		return true
	}
	return false
}
