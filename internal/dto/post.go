package dto

import (
	"time"

	"github.com/pvsouza/blog-messenger-api/internal/models"
	"github.com/pvsouza/blog-messenger-api/internal/utils"
)

// PostDTO represents a post in API responses
type PostDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Content     string    `json:"content"`
	Image       string    `json:"image,omitempty"`
	Slug        string    `json:"slug"`
	PublishedAt time.Time `json:"published_at"`
	AuthorID    uint64    `json:"author_id"`
	Author      *UserDTO  `json:"author,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostListItemDTO represents a post in list responses (no full content)
type PostListItemDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Slug        string    `json:"slug"`
	Image       string    `json:"image,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	AuthorID    uint64    `json:"author_id"`
	Author      *UserDTO  `json:"author,omitempty"`
}

// PostListResponse represents a paginated list of posts
type PostListResponse struct {
	Posts      []PostListItemDTO        `json:"posts"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToPostDTO converts a Post model to its DTO
func ToPostDTO(post models.Post) PostDTO {
	d := PostDTO{
		ID:          post.ID,
		Title:       post.Title,
		Subtitle:    post.Subtitle,
		Content:     post.Content,
		Image:       post.Image,
		Slug:        post.Slug,
		PublishedAt: post.PublishedAt,
		AuthorID:    post.AuthorID,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if post.Author.ID != 0 {
		author := ToRecipientDTO(post.Author)
		d.Author = &author
	}
	return d
}

// ToPostListItemDTO converts a Post model to its list DTO
func ToPostListItemDTO(post models.Post) PostListItemDTO {
	d := PostListItemDTO{
		ID:          post.ID,
		Title:       post.Title,
		Subtitle:    post.Subtitle,
		Slug:        post.Slug,
		Image:       post.Image,
		PublishedAt: post.PublishedAt,
		AuthorID:    post.AuthorID,
	}
	if post.Author.ID != 0 {
		author := ToRecipientDTO(post.Author)
		d.Author = &author
	}
	return d
}
