package domain

import (
	"time"

	"gorm.io/datatypes"
)

type GroupName string

const (
	GroupUser      GroupName = "USER"
	GroupModerator GroupName = "MODERATOR"
	GroupAdmin     GroupName = "ADMIN"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:false"`
	GroupID      uint      `json:"groupId" gorm:"not null"`
	Group        UserGroup `json:"-" gorm:"foreignKey:GroupID"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UserGroup struct {
	ID   uint      `json:"id" gorm:"primaryKey"`
	Name GroupName `json:"name" gorm:"size:50;uniqueIndex;not null"`
}

// UserProfile holds the optional personal details attached to an account.
type UserProfile struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"userId" gorm:"uniqueIndex;not null"`
	User        User           `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	FirstName   string         `json:"firstName" gorm:"size:100"`
	LastName    string         `json:"lastName" gorm:"size:100"`
	Avatar      string         `json:"avatar" gorm:"size:255"`
	Gender      string         `json:"gender" gorm:"size:10"`
	DateOfBirth datatypes.Date `json:"dateOfBirth"`
	Info        string         `json:"info" gorm:"type:text"`
}
