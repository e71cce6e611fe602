package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"hackathon_system/common/connectors/apiconn"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/connector"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// validUserIDs keeps only entries which are UUID strings in 8-4-4-4-12 form
func validUserIDs(values []any) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(values))
	seen := make(map[uuid.UUID]bool)
	for _, value := range values {
		s, ok := value.(string)
		// uuid.Parse also accepts braced, urn and undashed forms
		if !ok || len(s) != 36 {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func (h *Handler) getProfiles(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "User IDs array is required")
		return
	}
	var values []any
	raw, ok := body["userIds"]
	if !ok || json.Unmarshal(raw, &values) != nil || values == nil {
		connector.RespErr(c, http.StatusBadRequest, "User IDs array is required")
		return
	}

	profiles := make([]apiconn.Profile, 0)
	ids := validUserIDs(values)
	if len(ids) == 0 {
		connector.RespOK(c, profiles)
		return
	}
	var users []models.User
	if err := h.db.WithContext(c).Where("id IN ?", ids).Find(&users).Error; err != nil {
		connector.RespServerError(c, "Can not load profiles, error: %v", err)
		return
	}
	for _, user := range users {
		profiles = append(profiles, apiconn.Profile{
			ID:              user.ID,
			Username:        user.Username,
			FullName:        user.FullName,
			DiscordUsername: user.DiscordUsername,
			AvatarURL:       user.AvatarURL,
		})
	}
	connector.RespOK(c, profiles)
}

func (h *Handler) getMe(c *gin.Context) {
	connector.RespOK(c, currentUser(c))
}

func (h *Handler) updateMe(c *gin.Context) {
	var request apiconn.ProfileUpdate
	if err := c.BindJSON(&request); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	// Cached user is shared between requests, so it is copied
	user := *currentUser(c)
	updates := make(map[string]any)
	set := func(column string, field *string, value *string) {
		if value != nil {
			*field = strings.TrimSpace(*value)
			updates[column] = *field
		}
	}
	set("username", &user.Username, request.Username)
	set("full_name", &user.FullName, request.FullName)
	set("discord_username", &user.DiscordUsername, request.DiscordUsername)
	set("avatar_url", &user.AvatarURL, request.AvatarURL)
	set("bio", &user.Bio, request.Bio)
	if request.Skills != nil {
		user.Skills = request.Skills
		updates["skills"] = user.Skills
	}
	if len(updates) == 0 {
		connector.RespOK(c, &user)
		return
	}

	if err := h.db.WithContext(c).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		connector.RespServerError(c, "Can not update user %s, error: %v", user.ID, err)
		return
	}
	h.forgetUserSessions(c, user.ID)
	connector.RespOK(c, &user)
}
