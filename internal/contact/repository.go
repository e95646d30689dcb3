package contact

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Contact
func (r *Repository) Create(c *Contact) error {
	return r.DB.Create(c).Error
}

// ===========================
// 🔍 Get Contact By ID
func (r *Repository) GetByID(id uint) (*Contact, error) {
	var c Contact
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ===========================
// 📄 List Contacts, newest first, optional status filter
func (r *Repository) List(status string, limit, offset int) ([]Contact, int64, error) {
	var contacts []Contact
	var total int64

	query := r.DB.Model(&Contact{})
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
		Find(&contacts).Error
	return contacts, total, err
}

// ===========================
// 🛠 Save full record
func (r *Repository) Save(c *Contact) error {
	return r.DB.Save(c).Error
}

// ===========================
// ❌ Delete Contact
func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Contact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ===========================
// 📊 Count grouped by status
func (r *Repository) CountByStatus() (map[string]int64, int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&Contact{}).
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

// MarkEmailSent stamps the flag once the acknowledgment job is queued,
// not on delivery (see the EmailSent field comment on the model)
func (r *Repository) MarkEmailSent(id uint) error {
	return r.DB.Model(&Contact{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email_sent":    true,
			"email_sent_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}
