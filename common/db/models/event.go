package models

import (
	"strings"
	"time"

	"hackathon_system/common/constants/eventstatus"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultMaxTeams     = 50
	DefaultMaxTeamSize  = 3
	DefaultVotesPerUser = 3
)

type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
	Theme       string `json:"theme"`
	Location    string `json:"location"`
	Prize       string `json:"prize"`

	StartDate            time.Time `gorm:"not null" json:"start_date"`
	EndDate              time.Time `gorm:"not null" json:"end_date"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	SubmissionDeadline   time.Time `json:"submission_deadline"`

	MaxTeams     int `json:"max_teams"`
	MaxTeamSize  int `json:"max_team_size"`
	VotesPerUser int `json:"votes_per_user"`

	Cancelled          bool   `json:"cancelled"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	OwnerID uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave keeps all dates in UTC and fills in deadlines
func (e *Event) BeforeSave(tx *gorm.DB) error {
	e.StartDate = e.StartDate.UTC()
	e.EndDate = e.EndDate.UTC()
	if e.RegistrationDeadline.IsZero() {
		e.RegistrationDeadline = e.StartDate
	}
	if e.SubmissionDeadline.IsZero() {
		e.SubmissionDeadline = e.EndDate
	}
	e.RegistrationDeadline = e.RegistrationDeadline.UTC()
	e.SubmissionDeadline = e.SubmissionDeadline.UTC()
	return nil
}

func (e *Event) Status(now time.Time) eventstatus.Status {
	return eventstatus.CalculateWithCancel(e.StartDate, e.EndDate, now, e.Cancelled)
}

// RulesList splits rules by lines, empty lines are dropped
func (e *Event) RulesList() []string {
	rules := make([]string, 0)
	for _, line := range strings.Split(e.Rules, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rules = append(rules, line)
		}
	}
	return rules
}

// RegistrationOpen is true until the registration deadline
func (e *Event) RegistrationOpen(now time.Time) bool {
	deadline := e.RegistrationDeadline
	if deadline.IsZero() {
		deadline = e.StartDate
	}
	return !e.Cancelled && !now.After(deadline)
}

// SubmissionOpen is true until the submission deadline
func (e *Event) SubmissionOpen(now time.Time) bool {
	deadline := e.SubmissionDeadline
	if deadline.IsZero() {
		deadline = e.EndDate
	}
	return !e.Cancelled && !now.After(deadline)
}
