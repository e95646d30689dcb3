package blog

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sandeshm/portfolio-backend/internal/auditlog"
	"github.com/sandeshm/portfolio-backend/utils"
)

var (
	ErrNotFound     = errors.New("blog post not found")
	ErrSlugConflict = errors.New("a post with this slug already exists")
	ErrInvalid      = errors.New("title and content are required")
)

const (
	seoTitleMax = 60
	seoDescMax  = 160

	statsCacheKey = "portfolio:blog:stats"
)

type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(repo *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: repo, AuditSvc: auditSvc}
}

// ===========================
// 🎯 Create post. Slug is derived from the title when absent; SEO fields
// fall back to truncations of title/excerpt. PublishedAt is stamped here
// unconditionally (see model comment).
func (s *Service) Create(req *BlogRequest, ip string) (*Blog, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrInvalid
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	exists, err := s.Repo.SlugExists(slug, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugConflict
	}

	b := &Blog{
		Title:           req.Title,
		Slug:            slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		ContentSections: datatypes.NewJSONType(req.ContentSections),
		Image:           req.Image,
		Author:          req.Author,
		Category:        req.Category,
		Tags:            datatypes.NewJSONType(req.Tags),
		ReadTime:        req.ReadTime,
		PublishedAt:     time.Now(),
		SEOTitle:        req.SEOTitle,
		SEODescription:  req.SEODescription,
	}
	if req.Featured != nil {
		b.Featured = *req.Featured
	}
	if req.Published != nil {
		b.Published = *req.Published
	}
	applySEODefaults(b)

	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), "BLOG_CREATED", map[string]interface{}{
		"blog_id": b.ID,
		"slug":    b.Slug,
	}, ip, "success")
	utils.InvalidateCache(context.Background(), statsCacheKey)
	return b, nil
}

func applySEODefaults(b *Blog) {
	if b.SEOTitle == "" {
		b.SEOTitle = utils.Truncate(b.Title, seoTitleMax)
	}
	if b.SEODescription == "" {
		src := b.Excerpt
		if src == "" {
			src = b.Content
		}
		b.SEODescription = utils.Truncate(src, seoDescMax)
	}
}

// ===========================
// 🛠 Update post. The slug stays unique; explicit slug changes are allowed
// but collide against every other post.
func (s *Service) Update(id uint, req *BlogRequest, ip string) (*Blog, error) {
	b, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		b.Title = req.Title
	}
	if slug := strings.TrimSpace(req.Slug); slug != "" && slug != b.Slug {
		exists, err := s.Repo.SlugExists(slug, b.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSlugConflict
		}
		b.Slug = slug
	}
	if req.Excerpt != "" {
		b.Excerpt = req.Excerpt
	}
	if req.Content != "" {
		b.Content = req.Content
	}
	if req.ContentSections != nil {
		b.ContentSections = datatypes.NewJSONType(req.ContentSections)
	}
	if req.Image != "" {
		b.Image = req.Image
	}
	if req.Author != "" {
		b.Author = req.Author
	}
	if req.Category != "" {
		b.Category = req.Category
	}
	if req.Tags != nil {
		b.Tags = datatypes.NewJSONType(req.Tags)
	}
	if req.ReadTime != "" {
		b.ReadTime = req.ReadTime
	}
	if req.Featured != nil {
		b.Featured = *req.Featured
	}
	if req.Published != nil {
		b.Published = *req.Published
	}
	if req.SEOTitle != "" {
		b.SEOTitle = req.SEOTitle
	}
	if req.SEODescription != "" {
		b.SEODescription = req.SEODescription
	}
	applySEODefaults(b)

	if err := s.Repo.Save(b); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), "BLOG_UPDATED", map[string]interface{}{
		"blog_id": b.ID,
		"slug":    b.Slug,
	}, ip, "success")
	utils.InvalidateCache(context.Background(), statsCacheKey)
	return b, nil
}

func (s *Service) getByID(id uint) (*Blog, error) {
	b, err := s.Repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

// ===========================
// 🔍 Public read by slug. Incrementing the view counter is a deliberate
// side effect of the public read path (analytics), so this GET is not
// idempotent with respect to views.
func (s *Service) GetBySlug(slug string) (*Blog, error) {
	b, err := s.Repo.GetBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.IncrementViews(b.ID); err != nil {
		log.Printf("⚠️ View counter increment failed for blog %d: %v", b.ID, err)
	} else {
		b.Views++
	}
	return b, nil
}

// ===========================
// 📄 Lists
func (s *Service) List(filters ListFilters, limit, offset int) ([]Blog, int64, error) {
	return s.Repo.List(filters, true, limit, offset)
}

// ListAdmin includes unpublished drafts
func (s *Service) ListAdmin(filters ListFilters, limit, offset int) ([]Blog, int64, error) {
	return s.Repo.List(filters, false, limit, offset)
}

func (s *Service) Featured(limit int) ([]Blog, error) {
	if limit < 1 {
		limit = 3
	}
	return s.Repo.ListFeatured(limit)
}

func (s *Service) Categories() ([]string, error) {
	return s.Repo.Categories()
}

// ===========================
// 👍 Like increments the counter; anyone can call repeatedly
func (s *Service) Like(id uint) (int64, error) {
	likes, err := s.Repo.IncrementLikes(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	return likes, err
}

// ===========================
// ❌ Delete
func (s *Service) Delete(id uint, ip string) error {
	err := s.Repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), "BLOG_DELETED", map[string]interface{}{
		"blog_id": id,
	}, ip, "success")
	utils.InvalidateCache(context.Background(), statsCacheKey)
	return nil
}

// ===========================
// 📊 Stats, cached briefly in Redis
func (s *Service) Stats() (*StatsResponse, error) {
	ctx := context.Background()

	var cached StatsResponse
	if utils.GetCachedJSON(ctx, statsCacheKey, &cached) {
		return &cached, nil
	}

	stats, err := s.Repo.Stats()
	if err != nil {
		return nil, err
	}
	utils.CacheJSON(ctx, statsCacheKey, stats, 60*time.Second)
	return stats, nil
}
