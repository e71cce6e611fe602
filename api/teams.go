package api

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"hackathon_system/common/connectors/apiconn"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/connector"
	"hackathon_system/registration"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (h *Handler) loadTeam(db *gorm.DB, teamID uint) (*models.Team, error) {
	team := new(models.Team)
	err := db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Preload("Members.User").First(team, teamID).Error
	if err != nil {
		return nil, err
	}
	// Captain goes first
	sort.SliceStable(team.Members, func(i, j int) bool {
		return team.Members[i].UserID == team.OwnerID && team.Members[j].UserID != team.OwnerID
	})
	return team, nil
}

func isTeamMember(team *models.Team, userID uuid.UUID) bool {
	for _, member := range team.Members {
		if member.UserID == userID {
			return true
		}
	}
	return false
}

// teamSizeBound is the max team size of event team is registered for, or config default
func (h *Handler) teamSizeBound(db *gorm.DB, teamID uint) (int, error) {
	var sizes []int
	err := db.Model(&models.Registration{}).
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("registrations.team_id = ?", teamID).
		Order("events.max_team_size asc").
		Limit(1).
		Pluck("events.max_team_size", &sizes).
		Error
	if err != nil {
		return 0, err
	}
	if len(sizes) == 0 || sizes[0] == 0 {
		return h.config.Events.DefaultMaxTeamSize, nil
	}
	return sizes[0], nil
}

func (h *Handler) createTeam(c *gin.Context) {
	var request apiconn.TeamRequest
	if err := c.BindJSON(&request); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	if strings.TrimSpace(request.Name) == "" {
		connector.RespErr(c, http.StatusBadRequest, "%v", registration.ErrTeamNameRequired)
		return
	}
	user := currentUser(c)

	var team *models.Team
	err := h.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		newTeam := &models.Team{
			Name:        strings.TrimSpace(request.Name),
			Description: request.Description,
			OwnerID:     user.ID,
		}
		if err := tx.Create(newTeam).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.TeamMember{TeamID: newTeam.ID, UserID: user.ID}).Error; err != nil {
			return err
		}
		var err error
		team, err = h.loadTeam(tx, newTeam.ID)
		return err
	})
	if err != nil {
		respError(c, err, "Can not create team")
		return
	}
	connector.RespCreated(c, team)
}

func (h *Handler) getTeam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	team, err := h.loadTeam(h.db.WithContext(c), id)
	if err != nil {
		respError(c, err, "Can not load team %d", id)
		return
	}
	if !isTeamMember(team, currentUser(c).ID) {
		connector.RespErr(c, http.StatusForbidden, "Access denied: You are not a member of this team")
		return
	}
	connector.RespOK(c, team)
}

func (h *Handler) findOwnedTeam(c *gin.Context, tx *gorm.DB) (*models.Team, error) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return nil, err
	}
	team, err := h.loadTeam(tx, id)
	if err != nil {
		return nil, err
	}
	if team.OwnerID != currentUser(c).ID {
		return nil, forbidden("Only team owner can manage members")
	}
	return team, nil
}

func (h *Handler) addTeamMember(c *gin.Context) {
	var request apiconn.AddMemberRequest
	if err := c.BindJSON(&request); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(request.Email))
	discord := strings.TrimSpace(request.DiscordUsername)
	if email == "" && discord == "" {
		connector.RespErr(c, http.StatusBadRequest, "Email or discord username is required")
		return
	}

	var team *models.Team
	err := h.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		var err error
		team, err = h.findOwnedTeam(c, tx)
		if err != nil {
			return err
		}

		user := new(models.User)
		query := tx.Where("lower(email) = ?", email)
		if email == "" {
			query = tx.Where("discord_username = ?", discord)
		}
		if err = query.First(user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("User not found")
			}
			return err
		}

		bound, err := h.teamSizeBound(tx, team.ID)
		if err != nil {
			return err
		}
		err = registration.CheckCanJoin(len(team.Members), isTeamMember(team, user.ID), bound)
		if err != nil {
			return err
		}
		var eventIDs []uint
		err = tx.Model(&models.Registration{}).Where("team_id = ?", team.ID).Pluck("event_id", &eventIDs).Error
		if err != nil {
			return err
		}
		for _, eventID := range eventIDs {
			registered, err := registration.IsRegistered(tx, eventID, user.ID)
			if err != nil {
				return err
			}
			if registered {
				return &registration.MemberRegisteredError{Email: strings.ToLower(user.Email)}
			}
		}
		if err = tx.Create(&models.TeamMember{TeamID: team.ID, UserID: user.ID}).Error; err != nil {
			return err
		}
		team, err = h.loadTeam(tx, team.ID)
		return err
	})
	if err != nil {
		respError(c, err, "Can not add member to team")
		return
	}
	connector.RespOK(c, team)
}

func (h *Handler) removeTeamMember(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		connector.RespErr(c, http.StatusBadRequest, "Can not parse user id %s", c.Param("user"))
		return
	}

	var team *models.Team
	err = h.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		team, err = h.findOwnedTeam(c, tx)
		if err != nil {
			return err
		}
		if team.OwnerID == userID {
			return registration.ErrRemoveCaptain
		}
		if !isTeamMember(team, userID) {
			return notFound("User is not a member of this team")
		}
		err = tx.Delete(&models.TeamMember{}, "team_id = ? AND user_id = ?", team.ID, userID).Error
		if err != nil {
			return err
		}
		team, err = h.loadTeam(tx, team.ID)
		return err
	})
	if err != nil {
		respError(c, err, "Can not remove member from team")
		return
	}
	connector.RespOK(c, team)
}
