package models

import (
	"time"
)

// Follow represents a directed follow edge: UserID follows AuthorID.
// The composite primary key enforces at most one edge per (user, author)
// pair.
type Follow struct {
	UserID    int64     `gorm:"primaryKey;column:user_id"`
	AuthorID  int64     `gorm:"primaryKey;column:author_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User   *User `gorm:"foreignKey:UserID;references:ID"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "plume_follows"
}
