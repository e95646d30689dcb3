package subscription

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(s *Subscription) error {
	return r.DB.Create(s).Error
}

// FindByEmail looks up by the normalized (lower-cased) address
func (r *Repository) FindByEmail(email string) (*Subscription, error) {
	var s Subscription
	if err := r.DB.Where("email = ?", email).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) FindByToken(token string) (*Subscription, error) {
	var s Subscription
	if err := r.DB.Where("unsubscribe_token = ?", token).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) GetByID(id uint) (*Subscription, error) {
	var s Subscription
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Save(s *Subscription) error {
	return r.DB.Save(s).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Subscription{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) List(status string, limit, offset int) ([]Subscription, int64, error) {
	var subs []Subscription
	var total int64

	query := r.DB.Model(&Subscription{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subs).Error
	return subs, total, err
}

func (r *Repository) CountByStatus() (map[string]int64, int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&Subscription{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	byStatus := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		byStatus[r.Status] = r.Count
		total += r.Count
	}
	return byStatus, total, nil
}
