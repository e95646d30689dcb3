package contact

import (
	"time"
)

// Contact statuses follow the admin triage workflow
const (
	StatusPending  = "pending"
	StatusReview   = "review"
	StatusWorked   = "worked"
	StatusDone     = "done"
	StatusRejected = "rejected"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ============================
// 🔷 GORM Contact Model
type Contact struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Email       string     `gorm:"type:varchar(255);not null;index" json:"email"`
	Mobile      string     `gorm:"type:varchar(32)" json:"mobile,omitempty"`
	Subject     string     `gorm:"type:varchar(255);not null" json:"subject"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	Status      string     `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Priority    string     `gorm:"type:varchar(20);not null;default:medium" json:"priority"`
	AdminNotes  string     `gorm:"type:text" json:"adminNotes,omitempty"`
	// EmailSent records that the acknowledgment email was handed to the
	// mail queue; delivery itself is retried asynchronously and may still
	// fail after the flag is set.
	EmailSent   bool       `gorm:"default:false" json:"emailSent"`
	EmailSentAt *time.Time `json:"emailSentAt,omitempty"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ============================
// 🟡 Create Contact Request (public form)
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ============================
// 🟠 Admin Update Request (partial)
type UpdateContactRequest struct {
	Status     *string `json:"status,omitempty"`
	AdminNotes *string `json:"adminNotes,omitempty"`
	Priority   *string `json:"priority,omitempty"`
}

// FieldError is one entry of a validation error list
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StatsResponse is the count-by-status summary
type StatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusReview, StatusWorked, StatusDone, StatusRejected:
		return true
	}
	return false
}

func validPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
