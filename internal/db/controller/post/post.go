// Package post provides CRUD operations for blog posts.
package post

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/myapp-blog/myapp/internal/db/models"
)

const idQueryPattern = "id = ?"

var (
	// ErrPostNotFound is returned when a post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrTitleEmpty is returned when creating or updating a post without a title.
	ErrTitleEmpty = errors.New("post title cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// List returns all posts with their author, newest first.
func List(db *gorm.DB) ([]models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var posts []models.Post

	result := db.Joins("Author").Order("posts.created_at DESC, posts.id DESC").Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// Get returns the post with its author.
func Get(db *gorm.DB, id uint64) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Post

	result := db.Joins("Author").Where("posts.id = ?", id).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		return nil, result.Error
	}

	return &p, nil
}

// Create stores a new post written by authorID.
func Create(db *gorm.DB, authorID uint64, title, body string) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleEmpty
	}

	p := &models.Post{
		AuthorID: authorID,
		Title:    title,
		Body:     body,
	}

	if result := db.Create(p); result.Error != nil {
		return nil, result.Error
	}

	return p, nil
}

// Update replaces title and body of a post.
func Update(db *gorm.DB, id uint64, title, body string) error {
	if db == nil {
		return ErrDBNil
	}

	if strings.TrimSpace(title) == "" {
		return ErrTitleEmpty
	}

	// RowsAffected is 0 on mysql for unchanged rows, so check existence first
	var count int64
	if err := db.Model(&models.Post{}).Where(idQueryPattern, id).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return ErrPostNotFound
	}

	return db.Model(&models.Post{}).
		Where(idQueryPattern, id).
		Updates(map[string]any{"title": title, "body": body}).Error
}

// Delete removes a post.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where(idQueryPattern, id).Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}
