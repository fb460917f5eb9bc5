package models

import (
	"database/sql"
	"time"
)

// Post represents a published post. CreatedAt is set once at creation and
// never changes, even across edits.
type Post struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	Text      string        `gorm:"type:text;not null;column:text"`
	AuthorID  int64         `gorm:"not null;index;column:author_id"`
	GroupID   sql.NullInt64 `gorm:"index;column:group_id"`
	Image     string        `gorm:"type:varchar(1024);not null;default:'';column:image"`
	CreatedAt time.Time     `gorm:"not null;index;column:created_at"`

	// Relationships
	Author *User  `gorm:"foreignKey:AuthorID;references:ID"`
	Group  *Group `gorm:"foreignKey:GroupID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "plume_posts"
}
