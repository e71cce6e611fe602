package models

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TeamID      uint      `gorm:"uniqueIndex:idx_submission_team_event;not null" json:"team_id"`
	EventID     uint      `gorm:"uniqueIndex:idx_submission_team_event;index;not null" json:"event_id"`
	RepoURL     *string   `json:"repo_url,omitempty"`
	DemoURL     *string   `json:"demo_url,omitempty"`
	Description string    `json:"description"`
	SubmittedAt time.Time `json:"submitted_at"`
	Votes       int       `gorm:"not null;default:0" json:"votes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Team *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

type Vote struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_vote_user_submission;not null" json:"user_id"`
	SubmissionID uint      `gorm:"uniqueIndex:idx_vote_user_submission;not null" json:"submission_id"`
	EventID      uint      `gorm:"index;not null" json:"event_id"`
	CreatedAt    time.Time `json:"created_at"`
}
