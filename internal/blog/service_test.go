package blog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeshm/portfolio-backend/internal/auditlog"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Blog{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	return NewService(NewRepository(db), auditSvc)
}

func published() *bool {
	v := true
	return &v
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc := setupService(t)

	b, err := svc.Create(&BlogRequest{
		Title:   "Writing Go Services: Lessons Learned!",
		Content: "body",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "writing-go-services-lessons-learned", b.Slug)
	assert.False(t, b.PublishedAt.IsZero())
}

func TestCreateSlugConflict(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(&BlogRequest{Title: "My Post", Content: "a"}, "127.0.0.1")
	require.NoError(t, err)

	// Different title, explicitly colliding slug
	_, err = svc.Create(&BlogRequest{Title: "Other", Slug: "my-post", Content: "b"}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrSlugConflict)
}

func TestCreateRequiresTitleAndContent(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(&BlogRequest{Title: "No content"}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Create(&BlogRequest{Content: "no title"}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSEODefaultsAreTruncated(t *testing.T) {
	svc := setupService(t)

	longTitle := "This Is An Extremely Long Blog Post Title That Will Certainly Exceed Sixty Characters"
	b, err := svc.Create(&BlogRequest{Title: longTitle, Content: "body", Excerpt: "short excerpt"}, "127.0.0.1")
	require.NoError(t, err)

	assert.LessOrEqual(t, len([]rune(b.SEOTitle)), 60)
	assert.Equal(t, "short excerpt", b.SEODescription)
}

func TestGetBySlugIncrementsViews(t *testing.T) {
	svc := setupService(t)

	b, err := svc.Create(&BlogRequest{Title: "Views", Content: "body", Published: published()}, "127.0.0.1")
	require.NoError(t, err)

	got, err := svc.GetBySlug(b.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	got, err = svc.GetBySlug(b.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	svc := setupService(t)

	draft, err := svc.Create(&BlogRequest{Title: "Unannounced", Content: "body"}, "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.GetBySlug(draft.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	// the failed public read must not touch the draft's counters
	blogs, _, err := svc.ListAdmin(ListFilters{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, int64(0), blogs[0].Views)
}

func TestLikeIncrements(t *testing.T) {
	svc := setupService(t)

	b, err := svc.Create(&BlogRequest{Title: "Likes", Content: "body"}, "127.0.0.1")
	require.NoError(t, err)

	likes, err := svc.Like(b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	likes, err = svc.Like(b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)

	_, err = svc.Like(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublicListExcludesDrafts(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(&BlogRequest{Title: "Draft", Content: "body"}, "127.0.0.1")
	require.NoError(t, err)
	_, err = svc.Create(&BlogRequest{Title: "Live", Content: "body", Published: published()}, "127.0.0.1")
	require.NoError(t, err)

	blogs, total, err := svc.List(ListFilters{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Live", blogs[0].Title)

	_, adminTotal, err := svc.ListAdmin(ListFilters{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), adminTotal)
}

func TestListSearchFallback(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(&BlogRequest{Title: "Understanding Goroutines", Content: "concurrency in go", Published: published()}, "127.0.0.1")
	require.NoError(t, err)
	_, err = svc.Create(&BlogRequest{Title: "CSS Grid Basics", Content: "layout", Published: published()}, "127.0.0.1")
	require.NoError(t, err)

	blogs, total, err := svc.List(ListFilters{Search: "Goroutines"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Understanding Goroutines", blogs[0].Title)
}

func TestUpdateSlugChangeCollides(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(&BlogRequest{Title: "First", Content: "a"}, "127.0.0.1")
	require.NoError(t, err)
	second, err := svc.Create(&BlogRequest{Title: "Second", Content: "b"}, "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Update(second.ID, &BlogRequest{Slug: "first"}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrSlugConflict)

	// Re-saving with its own slug is not a conflict
	updated, err := svc.Update(second.ID, &BlogRequest{Slug: "second", Excerpt: "new"}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Excerpt)
}

func TestStatsAggregates(t *testing.T) {
	svc := setupService(t)

	b, err := svc.Create(&BlogRequest{Title: "One", Content: "a", Published: published()}, "127.0.0.1")
	require.NoError(t, err)
	_, err = svc.Create(&BlogRequest{Title: "Two", Content: "b"}, "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.GetBySlug(b.Slug)
	require.NoError(t, err)
	_, err = svc.Like(b.ID)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPosts)
	assert.Equal(t, int64(1), stats.PublishedPosts)
	assert.Equal(t, int64(1), stats.TotalViews)
	assert.Equal(t, int64(1), stats.TotalLikes)
}
