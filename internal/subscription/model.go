package subscription

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive       = "active"
	StatusInactive     = "inactive"
	StatusUnsubscribed = "unsubscribed"
)

// Preferences selects which mail categories a subscriber receives
type Preferences struct {
	Newsletters    bool `json:"newsletters"`
	ProjectUpdates bool `json:"projectUpdates"`
	TechInsights   bool `json:"techInsights"`
}

func defaultPreferences() Preferences {
	return Preferences{Newsletters: true, ProjectUpdates: true, TechInsights: true}
}

// ============================
// 🔷 GORM Subscription Model
// Email is stored lower-cased; the unique index enforces one record per
// normalized address.
type Subscription struct {
	ID                 uint                            `gorm:"primaryKey" json:"id"`
	Email              string                          `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	FirstName          string                          `gorm:"type:varchar(100)" json:"firstName,omitempty"`
	LastName           string                          `gorm:"type:varchar(100)" json:"lastName,omitempty"`
	Status             string                          `gorm:"type:varchar(20);not null;default:active;index" json:"status"`
	Source             string                          `gorm:"type:varchar(100)" json:"source,omitempty"`
	Preferences        datatypes.JSONType[Preferences] `json:"preferences"`
	UnsubscribeToken   string                          `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	UnsubscribedAt     *time.Time                      `json:"unsubscribedAt,omitempty"`
	UnsubscribedReason string                          `gorm:"type:text" json:"unsubscribedReason,omitempty"`
	CreatedAt          time.Time                       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time                       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ============================
// 🟡 Subscribe Request (public)
type SubscribeRequest struct {
	Email       string       `json:"email"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Source      string       `json:"source"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// UnsubscribeRequest carries the optional reason
type UnsubscribeRequest struct {
	Reason string `json:"reason"`
}

// StatsResponse summarizes subscriber counts by status
type StatsResponse struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	ByStatus map[string]int64 `json:"byStatus"`
}
