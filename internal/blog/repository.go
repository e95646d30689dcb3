package blog

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(b *Blog) error {
	return r.DB.Create(b).Error
}

func (r *Repository) GetByID(id uint) (*Blog, error) {
	var b Blog
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBySlug serves the public read path, so drafts stay invisible here;
// admins reach unpublished posts through the admin listing.
func (r *Repository) GetBySlug(slug string) (*Blog, error) {
	var b Blog
	if err := r.DB.Where("slug = ? AND published = ?", slug, true).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// SlugExists checks uniqueness, optionally excluding the post being updated
func (r *Repository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&Blog{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ===========================
// 📄 List with filters. Search uses Postgres full-text ranking; on other
// dialects (tests run on SQLite) it degrades to a LIKE match.
func (r *Repository) List(filters ListFilters, publishedOnly bool, limit, offset int) ([]Blog, int64, error) {
	var blogs []Blog
	var total int64

	query := r.DB.Model(&Blog{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}

	ranked := false
	if filters.Search != "" {
		if r.DB.Dialector.Name() == "postgres" {
			query = query.Where(
				"to_tsvector('english', title || ' ' || excerpt || ' ' || content || ' ' || COALESCE(tags::text, '')) @@ plainto_tsquery('english', ?)",
				filters.Search,
			)
			ranked = true
		} else {
			like := "%" + filters.Search + "%"
			query = query.Where("title LIKE ? OR excerpt LIKE ? OR content LIKE ?", like, like, like)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if ranked {
		query = query.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "ts_rank(to_tsvector('english', title || ' ' || excerpt || ' ' || content), plainto_tsquery('english', ?)) DESC, published_at DESC",
			Vars:               []interface{}{filters.Search},
			WithoutParentheses: true,
		}})
	} else {
		query = query.Order("published_at DESC")
	}

	err := query.Limit(limit).Offset(offset).Find(&blogs).Error
	return blogs, total, err
}

func (r *Repository) ListFeatured(limit int) ([]Blog, error) {
	var blogs []Blog
	err := r.DB.
		Where("published = ? AND featured = ?", true, true).
		Order("published_at DESC").
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

// Categories returns the distinct categories of published posts
func (r *Repository) Categories() ([]string, error) {
	var categories []string
	err := r.DB.Model(&Blog{}).
		Where("published = ? AND category <> ''", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *Repository) Save(b *Blog) error {
	return r.DB.Save(b).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Blog{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViews bumps the counter atomically in the database
func (r *Repository) IncrementViews(id uint) error {
	return r.DB.Model(&Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// IncrementLikes bumps the counter atomically; no per-caller deduplication
func (r *Repository) IncrementLikes(id uint) (int64, error) {
	res := r.DB.Model(&Blog{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var likes int64
	err := r.DB.Model(&Blog{}).Where("id = ?", id).Pluck("likes", &likes).Error
	return likes, err
}

func (r *Repository) Stats() (*StatsResponse, error) {
	var stats StatsResponse

	if err := r.DB.Model(&Blog{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&Blog{}).Where("published = ?", true).Count(&stats.PublishedPosts).Error; err != nil {
		return nil, err
	}

	type sums struct {
		Views int64
		Likes int64
	}
	var s sums
	if err := r.DB.Model(&Blog{}).
		Select("COALESCE(SUM(views), 0) as views, COALESCE(SUM(likes), 0) as likes").
		Scan(&s).Error; err != nil {
		return nil, err
	}
	stats.TotalViews = s.Views
	stats.TotalLikes = s.Likes
	return &stats, nil
}
