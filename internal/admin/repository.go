package admin

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) GetByEmail(email string) (*AdminUser, error) {
	var a AdminUser
	if err := r.DB.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetByID(id uint) (*AdminUser, error) {
	var a AdminUser
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Create(a *AdminUser) error {
	return r.DB.Create(a).Error
}

func (r *Repository) Save(a *AdminUser) error {
	return r.DB.Save(a).Error
}

func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&AdminUser{}).Count(&count).Error
	return count, err
}
