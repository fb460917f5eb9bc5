package models

import (
	"time"
)

// User represents an author identity. Accounts are provisioned by the
// external auth layer; this service only references them.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Handle    string    `gorm:"type:varchar(64);not null;uniqueIndex:plume_users_ux1;column:handle"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "plume_users"
}
