package models

import "time"

type Post struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Category string `gorm:"not null;index" json:"category"`
	Content  string `gorm:"not null" json:"content"`
	ImageURL string `json:"image_url"`
	AuthorID int    `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	// Set once at creation; edits never touch it.
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
}

type PostForm struct {
	Title    string `form:"title"`
	Category string `form:"category"`
	Content  string `form:"content"`
}
