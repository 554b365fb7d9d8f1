package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/trivora/trivora/internal/models"
)

// RecentLimit caps the number of posts on the home listing.
const RecentLimit = 6

// Both listings order by creation time ascending; id breaks ties for
// posts created within the same clock tick.
const listOrder = "created_at asc, id asc"

type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

type PostInput struct {
	Title    string
	Category string
	Content  string
	// Empty means "no image" on create and "keep the current image" on
	// update.
	ImageURL string
}

// CreatePost validates and persists a new post. The creation timestamp
// is assigned here, in UTC, and never changes afterwards.
func (s *ContentService) CreatePost(ctx context.Context, authorID int, in PostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	content := strings.TrimSpace(in.Content)
	if title == "" || category == "" || content == "" || authorID <= 0 {
		return nil, ErrInvalidInput
	}

	post := models.Post{
		Title:     title,
		Category:  category,
		Content:   content,
		ImageURL:  in.ImageURL,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}

	// Reload with author information
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, post.ID).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// ListRecent returns the home listing: up to RecentLimit posts,
// earliest first.
func (s *ContentService) ListRecent(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Order(listOrder).
		Limit(RecentLimit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByCategory returns every post whose category equals name exactly.
// No case folding and no trimming: "Tech" and "tech" are different
// categories.
func (s *ContentService) ListByCategory(ctx context.Context, name string) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("category = ?", name).
		Order(listOrder).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListAll returns every post, earliest first. Used for the sitemap.
func (s *ContentService) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Order(listOrder).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *ContentService) Get(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost overwrites title, category and content; the image is
// replaced only when a new one is supplied. Concurrent edits to the
// same post are last-writer-wins: there is no version check.
func (s *ContentService) UpdatePost(ctx context.Context, id, requesterID int, in PostInput) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if post.AuthorID != requesterID {
		return nil, ErrUnauthorized
	}

	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	content := strings.TrimSpace(in.Content)
	if title == "" || category == "" || content == "" {
		return nil, ErrInvalidInput
	}

	post.Title = title
	post.Category = category
	post.Content = content
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}

	if err := s.db.WithContext(ctx).Save(&post).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Preload("Author").First(&post, post.ID).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// DeletePost removes a post permanently. No soft delete.
func (s *ContentService) DeletePost(ctx context.Context, id, requesterID int) error {
	var post models.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if post.AuthorID != requesterID {
		return ErrUnauthorized
	}

	return s.db.WithContext(ctx).Delete(&post).Error
}
