package api

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"hackathon_system/common/connectors/apiconn"
	"hackathon_system/common/constants/eventstatus"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/connector"
	"hackathon_system/registration"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	maxTeamSizeLimit  = 10
	maxTeamsLimit     = 1000
	votesPerUserLimit = 10
)

// applyEventRequest validates request and writes it into event
func applyEventRequest(event *models.Event, request *apiconn.EventRequest) error {
	switch {
	case strings.TrimSpace(request.Name) == "":
		return badRequest("Event name is required")
	case strings.TrimSpace(request.Description) == "":
		return badRequest("Event description is required")
	case request.StartDate.IsZero():
		return badRequest("Start date is required")
	case request.EndDate.IsZero():
		return badRequest("End date is required")
	case !request.StartDate.Before(request.EndDate):
		return badRequest("End date must be after start date")
	case request.RegistrationDeadline != nil && request.RegistrationDeadline.After(request.StartDate):
		return badRequest("Registration deadline must be before start date")
	case request.SubmissionDeadline != nil && request.SubmissionDeadline.After(request.EndDate):
		return badRequest("Submission deadline cannot be after end date")
	}

	maxTeamSize := pick(request.MaxTeamSize, event.MaxTeamSize)
	maxTeams := pick(request.MaxTeams, event.MaxTeams)
	votesPerUser := pick(request.VotesPerUser, event.VotesPerUser)
	switch {
	case maxTeamSize < 1 || maxTeamSize > maxTeamSizeLimit:
		return badRequest("Team size must be between 1 and %d", maxTeamSizeLimit)
	case maxTeams < 1 || maxTeams > maxTeamsLimit:
		return badRequest("Maximum teams must be between 1 and %d", maxTeamsLimit)
	case votesPerUser < 1 || votesPerUser > votesPerUserLimit:
		return badRequest("Votes per user must be between 1 and %d", votesPerUserLimit)
	}

	event.Name = strings.TrimSpace(request.Name)
	event.Description = strings.TrimSpace(request.Description)
	event.Rules = request.Rules
	event.Theme = request.Theme
	event.Location = request.Location
	event.Prize = request.Prize
	event.StartDate = request.StartDate
	event.EndDate = request.EndDate
	event.RegistrationDeadline = time.Time{}
	if request.RegistrationDeadline != nil {
		event.RegistrationDeadline = *request.RegistrationDeadline
	}
	event.SubmissionDeadline = time.Time{}
	if request.SubmissionDeadline != nil {
		event.SubmissionDeadline = *request.SubmissionDeadline
	}
	event.MaxTeamSize = maxTeamSize
	event.MaxTeams = maxTeams
	event.VotesPerUser = votesPerUser
	return nil
}

func pick(value *int, fallback int) int {
	if value != nil {
		return *value
	}
	return fallback
}

func (h *Handler) createEvent(c *gin.Context) {
	var request apiconn.EventRequest
	if err := c.BindJSON(&request); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	event := &models.Event{
		MaxTeams:     models.DefaultMaxTeams,
		MaxTeamSize:  models.DefaultMaxTeamSize,
		VotesPerUser: models.DefaultVotesPerUser,
		OwnerID:      currentUser(c).ID,
	}
	if err := applyEventRequest(event, &request); err != nil {
		respError(c, err, "Can not create event")
		return
	}
	if err := h.db.WithContext(c).Create(event).Error; err != nil {
		connector.RespServerError(c, "Can not create event, error: %v", err)
		return
	}
	view, err := h.eventView(c, event)
	if err != nil {
		respError(c, err, "Can not load event %d", event.ID)
		return
	}
	connector.RespCreated(c, view)
}

func (h *Handler) getEvent(c *gin.Context) {
	event, ok := h.findEvent(c)
	if !ok {
		return
	}
	view, err := h.eventView(c, event)
	if err != nil {
		respError(c, err, "Can not load event %d", event.ID)
		return
	}
	connector.RespOK(c, view)
}

func (h *Handler) updateEvent(c *gin.Context) {
	event, ok := h.findOwnedEvent(c)
	if !ok {
		return
	}
	var request apiconn.EventRequest
	if err := c.BindJSON(&request); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	if event.Cancelled {
		connector.RespErr(c, http.StatusBadRequest, "Cancelled event can not be edited")
		return
	}
	if err := applyEventRequest(event, &request); err != nil {
		respError(c, err, "Can not update event %d", event.ID)
		return
	}
	if err := h.db.WithContext(c).Save(event).Error; err != nil {
		connector.RespServerError(c, "Can not update event %d, error: %v", event.ID, err)
		return
	}
	view, err := h.eventView(c, event)
	if err != nil {
		respError(c, err, "Can not load event %d", event.ID)
		return
	}
	connector.RespOK(c, view)
}

func (h *Handler) cancelEvent(c *gin.Context) {
	event, ok := h.findOwnedEvent(c)
	if !ok {
		return
	}
	var request apiconn.CancelRequest
	if err := c.BindJSON(&request); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	reason := strings.TrimSpace(request.Reason)
	if reason == "" {
		connector.RespErr(c, http.StatusBadRequest, "Cancellation reason is required")
		return
	}
	if event.Cancelled {
		connector.RespErr(c, http.StatusConflict, "Event is already cancelled")
		return
	}
	event.Cancelled = true
	event.CancellationReason = reason
	err := h.db.WithContext(c).
		Model(event).
		Select("Cancelled", "CancellationReason").
		Updates(event).
		Error
	if err != nil {
		connector.RespServerError(c, "Can not cancel event %d, error: %v", event.ID, err)
		return
	}
	view, err := h.eventView(c, event)
	if err != nil {
		respError(c, err, "Can not load event %d", event.ID)
		return
	}
	connector.RespOK(c, view)
}

func (h *Handler) getEvents(c *gin.Context) {
	filter := new(apiconn.EventsFilter)
	if err := c.ShouldBindQuery(filter); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	if filter.Count <= 0 || filter.Page <= 0 {
		connector.RespErr(c, http.StatusBadRequest, "count and page should be positive")
		return
	}
	if filter.Status != "" && !filter.Status.Valid() {
		connector.RespErr(c, http.StatusBadRequest, "Unknown event status %s", filter.Status)
		return
	}

	query := h.db.WithContext(c).Model(&models.Event{})
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			"lower(name) LIKE ? OR lower(description) LIKE ? OR lower(theme) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	var events []models.Event
	if err := query.Order("start_date asc, id asc").Find(&events).Error; err != nil {
		connector.RespServerError(c, "Can not load events, error: %v", err)
		return
	}

	// Status depends on current time, so it is filtered here instead of db
	now := h.now()
	list := &apiconn.EventList{
		Events: make([]apiconn.EventView, 0),
		Counts: make(map[eventstatus.Status]int),
	}
	matched := make([]models.Event, 0, len(events))
	for _, event := range events {
		status := event.Status(now)
		list.Counts[status]++
		if filter.Status == "" || filter.Status == status {
			matched = append(matched, event)
		}
	}
	list.Total = len(matched)

	// page-1 is compared before multiplying to avoid overflow
	if len(matched) > 0 && filter.Page-1 <= (len(matched)-1)/filter.Count {
		from := (filter.Page - 1) * filter.Count
		to := min(from+filter.Count, len(matched))
		views, err := h.eventViews(c, matched[from:to])
		if err != nil {
			respError(c, err, "Can not load events")
			return
		}
		list.Events = views
	}
	connector.RespOK(c, list)
}

func (h *Handler) findEventByID(c *gin.Context, id uint) (*models.Event, bool) {
	event := new(models.Event)
	err := h.db.WithContext(c).First(event, id).Error
	if err != nil {
		respError(c, err, "Can not load event %d", id)
		return nil, false
	}
	return event, true
}

func (h *Handler) findEvent(c *gin.Context) (*models.Event, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	return h.findEventByID(c, id)
}

func (h *Handler) findOwnedEvent(c *gin.Context) (*models.Event, bool) {
	event, ok := h.findEvent(c)
	if !ok {
		return nil, false
	}
	if event.OwnerID != currentUser(c).ID {
		connector.RespErr(c, http.StatusForbidden, "Only event owner can manage this event")
		return nil, false
	}
	return event, true
}

func (h *Handler) eventView(c *gin.Context, event *models.Event) (*apiconn.EventView, error) {
	views, err := h.eventViews(c, []models.Event{*event})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// eventViews adds computed fields to events, viewer info is set for authenticated requests
func (h *Handler) eventViews(c *gin.Context, events []models.Event) ([]apiconn.EventView, error) {
	now := h.now()
	ids := make([]uint, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}

	participants, err := h.countRegistrations(h.db.WithContext(c), ids)
	if err != nil {
		return nil, err
	}

	user := currentUser(c)
	myTeams := make(map[uint]uint)
	if user != nil && len(ids) > 0 {
		var rows []struct {
			EventID uint
			TeamID  uint
		}
		err = h.db.WithContext(c).
			Model(&models.Registration{}).
			Select("registrations.event_id, registrations.team_id").
			Joins("JOIN team_members ON team_members.team_id = registrations.team_id").
			Where("registrations.event_id IN ? AND team_members.user_id = ?", ids, user.ID).
			Scan(&rows).
			Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			myTeams[row.EventID] = row.TeamID
		}
	}

	views := make([]apiconn.EventView, len(events))
	for i, event := range events {
		views[i] = apiconn.EventView{
			Event:               event,
			Status:              event.Status(now),
			CurrentParticipants: participants[event.ID],
			RulesList:           event.RulesList(),
			TimeUntilStart:      eventstatus.TimeUntil(event.StartDate, now),

			TimeUntilRegistrationDeadline: eventstatus.TimeUntil(event.RegistrationDeadline, now),
		}
		if user != nil {
			views[i].IsOwner = event.OwnerID == user.ID
			if teamID, ok := myTeams[event.ID]; ok {
				views[i].IsRegistered = true
				views[i].MyTeamID = &teamID
			}
		}
	}
	return views, nil
}

func (h *Handler) countRegistrations(db *gorm.DB, eventIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	if len(eventIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		EventID uint
		Count   int64
	}
	err := db.Model(&models.Registration{}).
		Select("event_id, count(*) as count").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.EventID] = row.Count
	}
	return counts, nil
}

func (h *Handler) register(c *gin.Context) {
	event, ok := h.findEvent(c)
	if !ok {
		return
	}
	var request apiconn.RegistrationRequest
	if err := c.BindJSON(&request); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	user := currentUser(c)

	draft := registration.NewDraft(user.Email, event.MaxTeamSize)
	draft.TeamName = strings.TrimSpace(request.TeamName)
	draft.TeamDescription = request.TeamDescription
	if err := draft.Next(); err != nil {
		respError(c, err, "Bad registration")
		return
	}
	for _, email := range request.Members {
		if err := draft.AddMember(email); err != nil {
			respError(c, err, "Bad registration")
			return
		}
	}
	if err := draft.Next(); err != nil {
		respError(c, err, "Bad registration")
		return
	}

	result, err := registration.Submit(c, h.db, draft, event, user.ID, h.now())
	if err != nil {
		respError(c, err, "Can not register user %s for event %d", user.ID, event.ID)
		return
	}
	h.hs.Metrics.Registrations.Inc()
	connector.RespCreated(c, result)
}

func (h *Handler) getEventTeam(c *gin.Context) {
	event, ok := h.findEvent(c)
	if !ok {
		return
	}
	teamID, err := registration.RegisteredTeamID(h.db.WithContext(c), event.ID, currentUser(c).ID)
	if err != nil {
		connector.RespServerError(c, "Can not find team for event %d, error: %v", event.ID, err)
		return
	}
	if teamID == 0 {
		connector.RespErr(c, http.StatusNotFound, "You are not registered for this event")
		return
	}
	team, err := h.loadTeam(h.db.WithContext(c), teamID)
	if err != nil {
		respError(c, err, "Can not load team %d", teamID)
		return
	}
	connector.RespOK(c, team)
}

func sortEventsByStart(events []apiconn.EventView) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
}
