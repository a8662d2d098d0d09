package models

import "time"

// Post is a blog entry written by a User.
type Post struct {
	ID       uint64 `gorm:"primaryKey"`
	AuthorID uint64 `gorm:"not null;index"`
	// Author is loaded with the post; deleting a user removes their posts.
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"not null;index"`
	Title     string    `gorm:"size:255;not null"`
	Body      string    `gorm:"type:text;not null"`
}

// All returns every model managed by the database module in migration order.
func All() []any {
	return []any{&User{}, &Post{}}
}
