package model

import "time"

// Content statuses. A record enters as pending and is moved by a
// moderation decision; moderation never deletes.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Content categories accepted at intake.
const (
	CategoryThreads  = "threads"
	CategoryVideos   = "videos"
	CategoryGraphics = "graphics"
)

// Content is a community submission and the only entity with a lifecycle.
// The business payload is immutable after intake; only status, admin_notes
// and updated_at change, and only through a moderation decision.
type Content struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string `json:"title" gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	Category    string `json:"category" gorm:"type:varchar(16);index:idx_content_category;not null"`
	ImageURL    string `json:"image_url" gorm:"type:text;not null"`
	AuthorName  string `json:"author_name" gorm:"type:varchar(255);not null"`
	AuthorEmail string `json:"author_email" gorm:"type:varchar(255);not null"`
	Status      string `json:"status" gorm:"type:varchar(16);index:idx_content_status_created;not null;default:pending"`
	AdminNotes  string `json:"admin_notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_content_status_created;not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}

func (Content) TableName() string { return "content" }

// ValidStatus reports whether s is one of the lifecycle states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// ValidCategory reports whether c is an accepted submission category.
func ValidCategory(c string) bool {
	return c == CategoryThreads || c == CategoryVideos || c == CategoryGraphics
}
