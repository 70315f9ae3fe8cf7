package models

import "time"

type User struct {
	ID             int64     `gorm:"column:id;primary_key" json:"id"`
	Email          string    `gorm:"column:email;unique_index;not null" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;not null" json:"-"`
	FullName       string    `gorm:"column:full_name" json:"full_name"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the insert table name for this struct type
func (u *User) TableName() string {
	return "users"
}
