package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pvsouza/blog-messenger-api/internal/constants"
	"github.com/pvsouza/blog-messenger-api/internal/models"
	"github.com/pvsouza/blog-messenger-api/internal/repository"
	"github.com/pvsouza/blog-messenger-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostAuthor   = errors.New("only the author can modify this post")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title too long")
	ErrContentRequired = errors.New("content is required")
	ErrSlugTaken       = errors.New("slug already in use")
)

// PostService handles post business logic
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
	}
}

// ListPostsInput represents filters for listing posts
type ListPostsInput struct {
	Query    string
	Page     int
	PageSize int
}

// ListPosts lists posts newest-published first, optionally filtered by a
// case-insensitive search over title, subtitle and content.
func (s *PostService) ListPosts(input ListPostsInput) ([]models.Post, int64, error) {
	return s.postRepo.List(repository.PostFilter{
		Query:    input.Query,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
}

// GetPost resolves a post by numeric id or slug. A digits-only value is
// tried as an id first and falls back to a slug lookup, so posts whose
// slug happens to be numeric stay reachable.
func (s *PostService) GetPost(idOrSlug string) (*models.Post, error) {
	var post *models.Post
	var err error

	if id, ok := parseID(idOrSlug); ok {
		post, err = s.postRepo.FindByID(id, "Author")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			post, err = s.postRepo.FindBySlug(idOrSlug, "Author")
		}
	} else {
		post, err = s.postRepo.FindBySlug(idOrSlug, "Author")
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	return post, nil
}

// CreatePostInput represents input for creating a post
type CreatePostInput struct {
	Title       string
	Subtitle    string
	Content     string
	Image       string
	Slug        string
	PublishedAt *time.Time
	AuthorID    uint64
}

// CreatePost creates a post owned by the caller. When no slug is supplied
// one is derived from the title; a colliding derived slug gets a random
// suffix, an explicitly supplied one is rejected.
func (s *PostService) CreatePost(input CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > constants.MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}

	slugValue := strings.TrimSpace(input.Slug)
	explicit := slugValue != ""
	if !explicit {
		slugValue = utils.Slugify(title)
	}

	taken, err := s.postRepo.SlugTaken(slugValue, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		if explicit {
			return nil, ErrSlugTaken
		}
		slugValue, err = utils.SlugWithSuffix(title)
		if err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}
	}

	publishedAt := time.Now()
	if input.PublishedAt != nil {
		publishedAt = *input.PublishedAt
	}

	post := &models.Post{
		Title:       title,
		Subtitle:    input.Subtitle,
		Content:     input.Content,
		Image:       input.Image,
		Slug:        slugValue,
		PublishedAt: publishedAt,
		AuthorID:    input.AuthorID,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// UpdatePostInput represents input for updating a post. Nil pointers mean
// "leave unchanged".
type UpdatePostInput struct {
	Title       *string
	Subtitle    *string
	Content     *string
	Image       *string
	Slug        *string
	PublishedAt *time.Time
}

// UpdatePost applies a partial update. Only the author may update; the
// author itself is immutable.
func (s *PostService) UpdatePost(postID, callerID uint64, input UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	if post.AuthorID != callerID {
		return nil, ErrNotPostAuthor
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		if len(title) > constants.MaxTitleLength {
			return nil, ErrTitleTooLong
		}
		post.Title = title
	}
	if input.Subtitle != nil {
		post.Subtitle = *input.Subtitle
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, ErrContentRequired
		}
		post.Content = *input.Content
	}
	if input.Image != nil {
		post.Image = *input.Image
	}
	if input.Slug != nil {
		// An empty slug re-derives from the title instead of blanking
		// the field.
		slugValue := strings.TrimSpace(*input.Slug)
		explicit := slugValue != ""
		if !explicit {
			slugValue = utils.Slugify(post.Title)
		}
		if slugValue != post.Slug {
			taken, err := s.postRepo.SlugTaken(slugValue, post.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check slug: %w", err)
			}
			if taken {
				if explicit {
					return nil, ErrSlugTaken
				}
				slugValue, err = utils.SlugWithSuffix(post.Title)
				if err != nil {
					return nil, fmt.Errorf("failed to generate slug: %w", err)
				}
			}
			post.Slug = slugValue
		}
	}
	if input.PublishedAt != nil {
		post.PublishedAt = *input.PublishedAt
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// DeletePost removes a post after checking the caller owns it.
func (s *PostService) DeletePost(postID, callerID uint64) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to find post: %w", err)
	}

	if post.AuthorID != callerID {
		return ErrNotPostAuthor
	}

	if err := s.postRepo.Delete(post.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

func parseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	return id, err == nil
}
