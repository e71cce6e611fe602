package registration

import (
	"context"
	"time"

	"hackathon_system/common/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Result struct {
	Team         *models.Team         `json:"team"`
	Registration *models.Registration `json:"registration"`

	// PendingInvites are emails with no account yet
	PendingInvites []string `json:"pending_invites"`
}

// Submit creates team, memberships and registration in one transaction
func Submit(
	ctx context.Context,
	db *gorm.DB,
	draft *Draft,
	event *models.Event,
	captainID uuid.UUID,
	now time.Time,
) (*Result, error) {
	if draft.Step != StepConfirm {
		return nil, ErrNotConfirmed
	}
	if event.Cancelled {
		return nil, ErrEventCancelled
	}
	if !event.RegistrationOpen(now) {
		return nil, ErrDeadlinePassed
	}

	result := &Result{PendingInvites: make([]string, 0)}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := LockEvent(tx, event.ID)
		if err != nil {
			return err
		}
		if locked.Cancelled {
			return ErrEventCancelled
		}

		registered, err := IsRegistered(tx, event.ID, captainID)
		if err != nil {
			return err
		}
		if registered {
			return ErrAlreadyRegistered
		}

		var teamsCount int64
		err = tx.Model(&models.Registration{}).Where("event_id = ?", event.ID).Count(&teamsCount).Error
		if err != nil {
			return err
		}
		if locked.MaxTeams > 0 && teamsCount >= int64(locked.MaxTeams) {
			return ErrEventFull
		}

		team := &models.Team{
			Name:        draft.TeamName,
			Description: draft.TeamDescription,
			OwnerID:     captainID,
		}
		if err = tx.Create(team).Error; err != nil {
			return err
		}

		members := []models.TeamMember{{TeamID: team.ID, UserID: captainID}}
		if invited := draft.Invited(); len(invited) > 0 {
			var users []models.User
			if err = tx.Where("lower(email) IN ?", invited).Find(&users).Error; err != nil {
				return err
			}
			found := make(map[string]bool)
			for _, user := range users {
				found[normalizeEmail(user.Email)] = true
				if user.ID == captainID {
					continue
				}
				registered, err = IsRegistered(tx, event.ID, user.ID)
				if err != nil {
					return err
				}
				if registered {
					return &MemberRegisteredError{Email: normalizeEmail(user.Email)}
				}
				members = append(members, models.TeamMember{TeamID: team.ID, UserID: user.ID})
			}
			for _, email := range invited {
				if !found[email] {
					result.PendingInvites = append(result.PendingInvites, email)
				}
			}
		}
		if err = tx.Create(&members).Error; err != nil {
			return err
		}
		team.Members = members

		registration := &models.Registration{TeamID: team.ID, EventID: event.ID}
		if err = tx.Create(registration).Error; err != nil {
			return err
		}

		result.Team = team
		result.Registration = registration
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LockEvent reloads event holding a row lock until the end of tx,
// so registrations and votes of one event are serialized
func LockEvent(tx *gorm.DB, eventID uint) (*models.Event, error) {
	event := new(models.Event)
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(event, eventID).Error
	if err != nil {
		return nil, err
	}
	return event, nil
}

// IsRegistered checks whether user is a member of any team registered for event
func IsRegistered(db *gorm.DB, eventID uint, userID uuid.UUID) (bool, error) {
	teamID, err := RegisteredTeamID(db, eventID, userID)
	return teamID != 0, err
}

// RegisteredTeamID returns id of user's team registered for event, 0 if there is none
func RegisteredTeamID(db *gorm.DB, eventID uint, userID uuid.UUID) (uint, error) {
	var teamIDs []uint
	err := db.Model(&models.Registration{}).
		Joins("JOIN team_members ON team_members.team_id = registrations.team_id").
		Where("registrations.event_id = ? AND team_members.user_id = ?", eventID, userID).
		Order("registrations.id asc").
		Limit(1).
		Pluck("registrations.team_id", &teamIDs).
		Error
	if err != nil || len(teamIDs) == 0 {
		return 0, err
	}
	return teamIDs[0], nil
}
