package admin

import "time"

// ============================
// 🔷 GORM Admin User Model
// Single-operator deployment: one row seeded from environment at boot.
type AdminUser struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// 🟡 Login Request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// 🟢 Login Response
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Admin     *AdminUser `json:"admin"`
}
