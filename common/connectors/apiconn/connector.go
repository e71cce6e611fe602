package apiconn

import (
	"context"
	"strconv"

	"hackathon_system/common/config"
	"hackathon_system/common/connectors"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/connector"

	"github.com/go-resty/resty/v2"
)

type Connector struct {
	connection *connectors.ConnectorBase
}

func NewConnector(connection *config.Connection) *Connector {
	return &Connector{connectors.NewConnectorBase(connection)}
}

func (c *Connector) Login(ctx context.Context, email string) (*Session, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(&LoginRequest{Email: email})
	return connector.Receive[Session](r, "/api/auth/login", resty.MethodPost)
}

func (c *Connector) Logout(ctx context.Context) error {
	r := c.connection.R()
	r.SetContext(ctx)
	return connector.ReceiveEmpty(r, "/api/auth/session", resty.MethodDelete)
}

func (c *Connector) Me(ctx context.Context) (*models.User, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	return connector.Receive[models.User](r, "/api/me", resty.MethodGet)
}

func (c *Connector) UpdateMe(ctx context.Context, update *ProfileUpdate) (*models.User, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(update)
	return connector.Receive[models.User](r, "/api/me", resty.MethodPut)
}

func (c *Connector) Profiles(ctx context.Context, request *ProfilesRequest) ([]Profile, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(request)
	profiles, err := connector.Receive[[]Profile](r, "/api/profiles", resty.MethodPost)
	if err != nil {
		return nil, err
	}
	return *profiles, nil
}

func (c *Connector) Dashboard(ctx context.Context) (*Dashboard, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	return connector.Receive[Dashboard](r, "/api/dashboard", resty.MethodGet)
}

func (c *Connector) ListEvents(ctx context.Context, filter *EventsFilter) (*EventList, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	if filter.Query != "" {
		r.SetQueryParam("q", filter.Query)
	}
	if filter.Status != "" {
		r.SetQueryParam("status", string(filter.Status))
	}
	if filter.Count != 0 {
		r.SetQueryParam("count", strconv.Itoa(filter.Count))
	}
	if filter.Page != 0 {
		r.SetQueryParam("page", strconv.Itoa(filter.Page))
	}
	return connector.Receive[EventList](r, "/api/events", resty.MethodGet)
}

func (c *Connector) GetEvent(ctx context.Context, eventID uint) (*EventView, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	return connector.Receive[EventView](r, eventPath(eventID, ""), resty.MethodGet)
}

func (c *Connector) CreateEvent(ctx context.Context, request *EventRequest) (*EventView, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(request)
	return connector.Receive[EventView](r, "/api/events", resty.MethodPost)
}

func (c *Connector) UpdateEvent(ctx context.Context, eventID uint, request *EventRequest) (*EventView, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(request)
	return connector.Receive[EventView](r, eventPath(eventID, ""), resty.MethodPut)
}

func (c *Connector) CancelEvent(ctx context.Context, eventID uint, reason string) (*EventView, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(&CancelRequest{Reason: reason})
	return connector.Receive[EventView](r, eventPath(eventID, "/cancel"), resty.MethodPost)
}

func (c *Connector) Register(ctx context.Context, eventID uint, request *RegistrationRequest) (*RegistrationResult, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(request)
	return connector.Receive[RegistrationResult](r, eventPath(eventID, "/register"), resty.MethodPost)
}

func (c *Connector) EventTeam(ctx context.Context, eventID uint) (*models.Team, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	return connector.Receive[models.Team](r, eventPath(eventID, "/team"), resty.MethodGet)
}

func (c *Connector) MySubmission(ctx context.Context, eventID uint) (*models.Submission, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	return connector.Receive[models.Submission](r, eventPath(eventID, "/submission"), resty.MethodGet)
}

func (c *Connector) Submit(ctx context.Context, eventID uint, request *SubmissionRequest) (*models.Submission, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(request)
	return connector.Receive[models.Submission](r, eventPath(eventID, "/submission"), resty.MethodPut)
}

func (c *Connector) Submissions(ctx context.Context, eventID uint) ([]SubmissionView, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	submissions, err := connector.Receive[[]SubmissionView](r, eventPath(eventID, "/submissions"), resty.MethodGet)
	if err != nil {
		return nil, err
	}
	return *submissions, nil
}

func (c *Connector) Vote(ctx context.Context, submissionID uint) (*VoteResult, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	path := "/api/submissions/" + strconv.FormatUint(uint64(submissionID), 10) + "/vote"
	return connector.Receive[VoteResult](r, path, resty.MethodPost)
}

func (c *Connector) CreateTeam(ctx context.Context, request *TeamRequest) (*models.Team, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(request)
	return connector.Receive[models.Team](r, "/api/teams", resty.MethodPost)
}

func (c *Connector) GetTeam(ctx context.Context, teamID uint) (*models.Team, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	return connector.Receive[models.Team](r, teamPath(teamID, ""), resty.MethodGet)
}

func (c *Connector) AddTeamMember(ctx context.Context, teamID uint, request *AddMemberRequest) (*models.Team, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	r.SetBody(request)
	return connector.Receive[models.Team](r, teamPath(teamID, "/members"), resty.MethodPost)
}

func (c *Connector) RemoveTeamMember(ctx context.Context, teamID uint, userID string) (*models.Team, error) {
	r := c.connection.R()
	r.SetContext(ctx)
	return connector.Receive[models.Team](r, teamPath(teamID, "/members/"+userID), resty.MethodDelete)
}

func eventPath(eventID uint, suffix string) string {
	return "/api/events/" + strconv.FormatUint(uint64(eventID), 10) + suffix
}

func teamPath(teamID uint, suffix string) string {
	return "/api/teams/" + strconv.FormatUint(uint64(teamID), 10) + suffix
}
