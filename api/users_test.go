package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"hackathon_system/common/config"
	"hackathon_system/common/connectors/apiconn"
	"hackathon_system/lib/connector"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"
	"gorm.io/gorm"
)

func TestProfiles(t *testing.T) {
	h := initHS(t)
	ctx := context.Background()
	first := h.login("first@example.org")
	second := h.login("second@example.org")

	_, err := first.UpdateMe(ctx, &apiconn.ProfileUpdate{FullName: pointer.String("Ada Lovelace")})
	require.NoError(t, err)
	firstUser, err := first.Me(ctx)
	require.NoError(t, err)
	secondUser, err := second.Me(ctx)
	require.NoError(t, err)

	profiles, err := h.anonymous().Profiles(ctx, &apiconn.ProfilesRequest{UserIDs: []any{
		firstUser.ID.String(), nil, "", "null", "undefined", "not-a-uuid", 42,
		secondUser.ID.String(), uuid.NewString(), firstUser.ID.String(),
	}})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	names := []string{profiles[0].FullName + profiles[0].Username, profiles[1].FullName + profiles[1].Username}
	require.ElementsMatch(t, []string{"Ada Lovelacefirst", "second"}, names)

	profiles, err = h.anonymous().Profiles(ctx, &apiconn.ProfilesRequest{UserIDs: []any{"null", nil}})
	require.NoError(t, err)
	require.Empty(t, profiles)

	client := resty.New().SetBaseURL(h.server.URL)
	for _, body := range []any{
		map[string]any{},
		map[string]any{"userIds": "not an array"},
		map[string]any{"userIds": nil},
		[]string{"not an object"},
	} {
		err = connector.ReceiveEmpty(client.R().SetBody(body), "/api/profiles", resty.MethodPost)
		requireAPIError(t, err, http.StatusBadRequest, "User IDs array is required")
	}
}

func TestMeAndSessions(t *testing.T) {
	h := initHS(t)
	ctx := context.Background()

	_, err := h.anonymous().Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "Authentication required")

	_, err = h.anonymous().Login(ctx, "not an email")
	requireAPIError(t, err, http.StatusBadRequest, "Valid email is required")

	conn := h.login("Grace@Example.org")
	me, err := conn.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "grace@example.org", me.Email)
	require.Equal(t, "grace", me.Username)

	updated, err := conn.UpdateMe(ctx, &apiconn.ProfileUpdate{
		FullName: pointer.String(" Grace Hopper "),
		Bio:      pointer.String("Compilers"),
		Skills:   []string{"cobol", "go"},
	})
	require.NoError(t, err)
	require.Equal(t, "Grace Hopper", updated.FullName)
	require.Equal(t, "grace", updated.Username)

	// Second login is the same user with another session
	other := h.login("grace@example.org")
	me, err = other.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, updated.ID, me.ID)
	require.Equal(t, "Grace Hopper", me.FullName)
	require.Equal(t, []string{"cobol", "go"}, []string(me.Skills))

	require.NoError(t, conn.Logout(ctx))
	_, err = conn.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "Session is invalid or expired")
	_, err = other.Me(ctx)
	require.NoError(t, err)

	bad := apiconn.NewConnector(&config.Connection{Address: h.server.URL, Token: uuid.NewString()})
	_, err = bad.Dashboard(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "")
}

func TestCreateSession(t *testing.T) {
	h := initHSWithConfig(t, func(cfg *config.Config) {
		cfg.Auth.DevLogin = false
	})
	ctx := context.Background()

	_, err := h.anonymous().Login(ctx, "someone@example.org")
	requireAPIError(t, err, http.StatusNotFound, "")

	_, _, err = CreateSession(ctx, h.hs.DB, "someone@example.org", false)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	session, user, err := CreateSession(ctx, h.hs.DB, "someone@example.org", true)
	require.NoError(t, err)
	again, sameUser, err := CreateSession(ctx, h.hs.DB, "SOMEONE@example.org", false)
	require.NoError(t, err)
	require.Equal(t, user.ID, sameUser.ID)
	require.NotEqual(t, session.Token, again.Token)

	conn := apiconn.NewConnector(&config.Connection{Address: h.server.URL, Token: again.Token})
	me, err := conn.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, me.ID)
}

func TestDashboard(t *testing.T) {
	h := initHS(t)
	ctx := context.Background()
	owner := h.login("owner@example.org")
	me := h.login("me@example.org")
	start := h.now

	eventAt := func(name string, from, to time.Duration) *apiconn.EventView {
		request := h.eventRequest(name)
		request.StartDate = start.Add(from)
		request.EndDate = start.Add(to)
		event := h.createEvent(owner, request)
		_, err := me.Register(ctx, event.ID, &apiconn.RegistrationRequest{TeamName: name + " team"})
		require.NoError(t, err)
		return event
	}
	day := 24 * time.Hour
	eventAt("Old", time.Hour, 2*time.Hour)
	eventAt("Recent", time.Hour, 10*day)
	live := eventAt("Live", time.Hour, 13*day)
	eventAt("Future", 20*day, 21*day)
	h.createEvent(me, h.eventRequest("Hosted"))

	h.now = start.Add(12 * day)
	_, err := me.Submit(ctx, live.ID, &apiconn.SubmissionRequest{
		Description: "Live project",
		DemoURL:     "https://demo.example.org",
	})
	require.NoError(t, err)

	dashboard, err := me.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, apiconn.DashboardStats{
		ActiveEvents:   1,
		MyTeams:        4,
		Submissions:    1,
		UpcomingEvents: 1,
		HostedEvents:   1,
	}, dashboard.Stats)

	names := func(events []apiconn.EventView) []string {
		result := make([]string, 0)
		for _, event := range events {
			result = append(result, event.Name)
		}
		return result
	}
	require.ElementsMatch(t, []string{"Recent", "Live", "Future"}, names(dashboard.Events.Active))
	require.Equal(t, []string{"Old"}, names(dashboard.Events.Completed))
	require.Equal(t, []string{"Hosted"}, names(dashboard.Hosted.Completed))
	for _, event := range dashboard.Events.Active {
		require.True(t, event.IsRegistered)
	}

	require.Len(t, dashboard.Teams, 4)
	for _, team := range dashboard.Teams {
		require.Len(t, team.Members, 1)
	}

	empty, err := owner.Dashboard(ctx)
	require.NoError(t, err)
	require.Empty(t, empty.Teams)
	require.Equal(t, 4, empty.Stats.HostedEvents)
	require.Empty(t, empty.Events.Active)
}

func TestValidUserIDs(t *testing.T) {
	id := uuid.New()
	canonical := id.String()
	ids := validUserIDs([]any{
		canonical,
		"{" + canonical + "}",
		"urn:uuid:" + canonical,
		" " + canonical + " ",
		"6ba7b8109dad11d180b400c04fd430c8",
		"undefined",
		nil,
	})
	require.Equal(t, []uuid.UUID{id}, ids)

	upper := uuid.New()
	ids = validUserIDs([]any{strings.ToUpper(upper.String())})
	require.Equal(t, []uuid.UUID{upper}, ids)
}
