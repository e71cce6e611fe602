package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"hackathon_system/common"
	"hackathon_system/common/config"
	"hackathon_system/common/connectors/apiconn"
	"hackathon_system/common/db"
	"hackathon_system/lib/connector"
	"hackathon_system/lib/logger"

	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"
)

type hsHolder struct {
	t *testing.T

	hs      *common.HackathonSystem
	handler *Handler
	server  *httptest.Server

	now time.Time
}

func initHS(t *testing.T) *hsHolder {
	return initHSWithConfig(t, nil)
}

func initHSWithConfig(t *testing.T, modify func(cfg *config.Config)) *hsHolder {
	cfg := &config.Config{
		Logger: &logger.Config{Level: pointer.String("warn")},
		DB:     config.DBConfig{InMemory: true},
		Auth:   &config.AuthConfig{DevLogin: true},
	}
	if modify != nil {
		modify(cfg)
	}
	config.FillInConfig(cfg)

	h := &hsHolder{
		t:   t,
		now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	h.hs = common.NewHackathonSystem(cfg)
	h.handler = SetupHandler(h.hs)
	h.handler.now = func() time.Time { return h.now }
	h.server = httptest.NewServer(h.hs.Router)

	t.Cleanup(func() {
		h.server.Close()
		h.hs.Stop()
		db.Close(h.hs.DB)
	})
	return h
}

func (h *hsHolder) anonymous() *apiconn.Connector {
	return apiconn.NewConnector(&config.Connection{Address: h.server.URL})
}

// login creates user on first call and returns connector authorized as this user
func (h *hsHolder) login(email string) *apiconn.Connector {
	session, err := h.anonymous().Login(context.Background(), email)
	require.NoError(h.t, err)
	require.NotEmpty(h.t, session.Token)
	return apiconn.NewConnector(&config.Connection{Address: h.server.URL, Token: session.Token})
}

func (h *hsHolder) eventRequest(name string) *apiconn.EventRequest {
	return &apiconn.EventRequest{
		Name:        name,
		Description: name + " description",
		Rules:       "Be nice\nShip it",
		Theme:       "Open source",
		StartDate:   h.now.Add(48 * time.Hour),
		EndDate:     h.now.Add(96 * time.Hour),
	}
}

func (h *hsHolder) createEvent(conn *apiconn.Connector, request *apiconn.EventRequest) *apiconn.EventView {
	event, err := conn.CreateEvent(context.Background(), request)
	require.NoError(h.t, err)
	return event
}

func requireAPIError(t *testing.T, err error, code int, message string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, connector.StatusCode(err), "unexpected error %v", err)
	var connErr *connector.Error
	require.True(t, errors.As(err, &connErr))
	if message != "" {
		require.Equal(t, message, connErr.Message)
	}
}
