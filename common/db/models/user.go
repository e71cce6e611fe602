package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Username        string     `json:"username,omitempty"`
	FullName        string     `json:"full_name,omitempty"`
	DiscordUsername string     `gorm:"index" json:"discord_username,omitempty"`
	AvatarURL       string     `json:"avatar_url,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	Skills          StringList `json:"skills"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName is the name shown in member lists
func (u *User) DisplayName() string {
	switch {
	case u.FullName != "":
		return u.FullName
	case u.DiscordUsername != "":
		return u.DiscordUsername
	case u.Username != "":
		return u.Username
	default:
		return "Unknown User"
	}
}

type Session struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
