package apiconn

import (
	"time"

	"hackathon_system/common/constants/eventstatus"
	"hackathon_system/common/db/models"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email string `json:"email"`
}

type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type EventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
	Theme       string `json:"theme"`
	Location    string `json:"location"`
	Prize       string `json:"prize"`

	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	SubmissionDeadline   *time.Time `json:"submission_deadline,omitempty"`

	// Unset values keep defaults on creation and old values on update
	MaxTeams     *int `json:"max_teams,omitempty"`
	MaxTeamSize  *int `json:"max_team_size,omitempty"`
	VotesPerUser *int `json:"votes_per_user,omitempty"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type EventView struct {
	models.Event

	Status              eventstatus.Status `json:"status"`
	CurrentParticipants int64              `json:"current_participants"`
	RulesList           []string           `json:"rules_list"`
	TimeUntilStart      string             `json:"time_until_start"`

	// TimeUntilRegistrationDeadline is what the "registration closes in" badge shows
	TimeUntilRegistrationDeadline string `json:"time_until_registration_deadline"`

	// Viewer info, filled in only for authenticated requests
	IsRegistered bool  `json:"is_registered"`
	MyTeamID     *uint `json:"my_team_id,omitempty"`
	IsOwner      bool  `json:"is_owner"`
}

type EventsFilter struct {
	Query  string             `form:"q"`
	Status eventstatus.Status `form:"status"`
	Count  int                `form:"count,default=20"`
	Page   int                `form:"page,default=1"`
}

type EventList struct {
	Events []EventView                `json:"events"`
	Total  int                        `json:"total"`
	Counts map[eventstatus.Status]int `json:"counts"`
}

// RegistrationRequest is the whole registration wizard draft
type RegistrationRequest struct {
	TeamName        string   `json:"team_name"`
	TeamDescription string   `json:"team_description"`
	Members         []string `json:"members"`
}

type TeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddMemberRequest identifies user by email or by discord username
type AddMemberRequest struct {
	Email           string `json:"email,omitempty"`
	DiscordUsername string `json:"discord_username,omitempty"`
}

type SubmissionRequest struct {
	Description string `json:"description"`
	RepoURL     string `json:"repo_url"`
	DemoURL     string `json:"demo_url"`
}

type SubmissionView struct {
	models.Submission

	TeamName    string   `json:"team_name"`
	MemberNames []string `json:"member_names"`
	CanVote     bool     `json:"can_vote"`
	HasVoted    bool     `json:"has_voted"`
}

type VoteResult struct {
	SubmissionID uint `json:"submission_id"`
	Votes        int  `json:"votes"`
	VotesLeft    int  `json:"votes_left"`
}

type ProfilesRequest struct {
	UserIDs []any `json:"userIds"`
}

type Profile struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username,omitempty"`
	FullName        string    `json:"full_name,omitempty"`
	DiscordUsername string    `json:"discord_username,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
}

type ProfileUpdate struct {
	Username        *string  `json:"username,omitempty"`
	FullName        *string  `json:"full_name,omitempty"`
	DiscordUsername *string  `json:"discord_username,omitempty"`
	AvatarURL       *string  `json:"avatar_url,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	Skills          []string `json:"skills,omitempty"`
}

type Dashboard struct {
	Teams  []models.Team   `json:"teams"`
	Events DashboardEvents `json:"events"`
	Hosted DashboardEvents `json:"hosted"`
	Stats  DashboardStats  `json:"stats"`
}

type DashboardEvents struct {
	Active    []EventView `json:"active"`
	Completed []EventView `json:"completed"`
}

type DashboardStats struct {
	ActiveEvents   int `json:"active_events"`
	MyTeams        int `json:"my_teams"`
	Submissions    int `json:"submissions"`
	UpcomingEvents int `json:"upcoming_events"`
	HostedEvents   int `json:"hosted_events"`
}

type RegistrationResult struct {
	Team           *models.Team         `json:"team"`
	Registration   *models.Registration `json:"registration"`
	PendingInvites []string             `json:"pending_invites"`
}
