package api

import (
	"hackathon_system/common/connectors/apiconn"
	"hackathon_system/common/constants/eventstatus"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/connector"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func (h *Handler) getDashboard(c *gin.Context) {
	user := currentUser(c)
	dashboard := &apiconn.Dashboard{
		Teams: make([]models.Team, 0),
	}

	var registered, hosted []models.Event
	var submissions int64

	g, ctx := errgroup.WithContext(c)
	g.Go(func() error {
		return h.db.WithContext(ctx).
			Preload("Members").
			Joins("JOIN team_members ON team_members.team_id = teams.id").
			Where("team_members.user_id = ?", user.ID).
			Order("teams.id asc").
			Find(&dashboard.Teams).
			Error
	})
	g.Go(func() error {
		return h.db.WithContext(ctx).
			Distinct("events.*").
			Joins("JOIN registrations ON registrations.event_id = events.id").
			Joins("JOIN team_members ON team_members.team_id = registrations.team_id").
			Where("team_members.user_id = ?", user.ID).
			Order("events.start_date asc").
			Find(&registered).
			Error
	})
	g.Go(func() error {
		return h.db.WithContext(ctx).
			Where("owner_id = ?", user.ID).
			Order("start_date asc").
			Find(&hosted).
			Error
	})
	g.Go(func() error {
		return h.db.WithContext(ctx).
			Model(&models.Submission{}).
			Joins("JOIN team_members ON team_members.team_id = submissions.team_id").
			Where("team_members.user_id = ?", user.ID).
			Count(&submissions).
			Error
	})
	if err := g.Wait(); err != nil {
		connector.RespServerError(c, "Can not load dashboard of user %s, error: %v", user.ID, err)
		return
	}

	var err error
	dashboard.Events, err = h.dashboardEvents(c, registered)
	if err != nil {
		connector.RespServerError(c, "Can not load dashboard events, error: %v", err)
		return
	}
	dashboard.Hosted, err = h.dashboardEvents(c, hosted)
	if err != nil {
		connector.RespServerError(c, "Can not load dashboard events, error: %v", err)
		return
	}

	now := h.now()
	for _, event := range registered {
		switch event.Status(now) {
		case eventstatus.Active:
			dashboard.Stats.ActiveEvents++
		case eventstatus.Upcoming:
			dashboard.Stats.UpcomingEvents++
		}
	}
	dashboard.Stats.MyTeams = len(dashboard.Teams)
	dashboard.Stats.Submissions = int(submissions)
	dashboard.Stats.HostedEvents = len(hosted)

	connector.RespOK(c, dashboard)
}

// dashboardEvents splits events into shown on dashboard and completed
func (h *Handler) dashboardEvents(c *gin.Context, events []models.Event) (apiconn.DashboardEvents, error) {
	result := apiconn.DashboardEvents{
		Active:    make([]apiconn.EventView, 0),
		Completed: make([]apiconn.EventView, 0),
	}
	views, err := h.eventViews(c, events)
	if err != nil {
		return result, err
	}
	now := h.now()
	window := h.config.Events.DashboardWindow.Val()
	for _, view := range views {
		if !view.Cancelled && eventstatus.ShouldShowOnDashboard(view.StartDate, view.EndDate, now, window) {
			result.Active = append(result.Active, view)
		} else {
			result.Completed = append(result.Completed, view)
		}
	}
	sortEventsByStart(result.Active)
	sortEventsByStart(result.Completed)
	return result, nil
}
