package repository

import (
	"strings"

	"github.com/pvsouza/blog-messenger-api/internal/models"
	"gorm.io/gorm"
)

// GormPostRepository is a GORM implementation of PostRepository
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// FindByID finds a post by ID with optional preloading
func (r *GormPostRepository) FindByID(id uint64, preload ...string) (*models.Post, error) {
	var post models.Post
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&post, id).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// FindBySlug finds a post by slug with optional preloading
func (r *GormPostRepository) FindBySlug(slug string, preload ...string) (*models.Post, error) {
	var post models.Post
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// List retrieves posts with search filtering and pagination
func (r *GormPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	var posts []models.Post

	query := r.db.Model(&models.Post{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(subtitle) LIKE ? OR LOWER(content) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("published_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Author").Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Update updates a post
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete soft deletes a post
func (r *GormPostRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// SlugTaken reports whether a slug is already used by another post.
// Soft-deleted rows still occupy the unique index, so the check runs
// unscoped.
func (r *GormPostRepository) SlugTaken(slug string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
