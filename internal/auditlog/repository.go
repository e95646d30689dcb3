package auditlog

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]AuditLog, int64, error) {
	var logs []AuditLog
	var total int64

	if err := r.DB.WithContext(ctx).Model(&AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}
