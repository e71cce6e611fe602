package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"hackathon_system/common/connectors/apiconn"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/connector"
	"hackathon_system/registration"

	"github.com/gin-gonic/gin"
	"github.com/xorcare/pointer"
	"gorm.io/gorm"
)

func validateSubmission(request *apiconn.SubmissionRequest) error {
	request.Description = strings.TrimSpace(request.Description)
	request.RepoURL = strings.TrimSpace(request.RepoURL)
	request.DemoURL = strings.TrimSpace(request.DemoURL)
	switch {
	case request.Description == "":
		return badRequest("Project description is required")
	case request.RepoURL == "" && request.DemoURL == "":
		return badRequest("At least one of repository URL or demo URL is required")
	case request.RepoURL != "" && !validURL(request.RepoURL):
		return badRequest("Please enter a valid repository URL")
	case request.DemoURL != "" && !validURL(request.DemoURL):
		return badRequest("Please enter a valid demo URL")
	}
	return nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return pointer.String(s)
}

// findMyTeam returns team of current user registered for event
func (h *Handler) findMyTeam(c *gin.Context, db *gorm.DB, eventID uint) (*models.Team, error) {
	teamID, err := registration.RegisteredTeamID(db, eventID, currentUser(c).ID)
	if err != nil {
		return nil, err
	}
	if teamID == 0 {
		return nil, notFound("You are not registered for this event")
	}
	team := new(models.Team)
	if err = db.First(team, teamID).Error; err != nil {
		return nil, err
	}
	return team, nil
}

func (h *Handler) getMySubmission(c *gin.Context) {
	event, ok := h.findEvent(c)
	if !ok {
		return
	}
	team, err := h.findMyTeam(c, h.db.WithContext(c), event.ID)
	if err != nil {
		respError(c, err, "Can not find team for event %d", event.ID)
		return
	}
	submission := new(models.Submission)
	err = h.db.WithContext(c).Where("team_id = ? AND event_id = ?", team.ID, event.ID).First(submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			connector.RespErr(c, http.StatusNotFound, "Project is not submitted yet")
			return
		}
		connector.RespServerError(c, "Can not load submission of team %d, error: %v", team.ID, err)
		return
	}
	connector.RespOK(c, submission)
}

func (h *Handler) saveSubmission(c *gin.Context) {
	event, ok := h.findEvent(c)
	if !ok {
		return
	}
	var request apiconn.SubmissionRequest
	if err := c.BindJSON(&request); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	if err := validateSubmission(&request); err != nil {
		respError(c, err, "Bad submission")
		return
	}
	now := h.now()
	if event.Cancelled {
		connector.RespErr(c, http.StatusBadRequest, "%v", registration.ErrEventCancelled)
		return
	}
	if !event.SubmissionOpen(now) {
		connector.RespErr(c, http.StatusBadRequest, "Submission deadline has passed")
		return
	}

	submission := new(models.Submission)
	created := false
	err := h.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		team, err := h.findMyTeam(c, tx, event.ID)
		if err != nil {
			return err
		}
		if team.OwnerID != currentUser(c).ID {
			return forbidden("Only team captain can submit the project")
		}

		err = tx.Where("team_id = ? AND event_id = ?", team.ID, event.ID).First(submission).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			submission.TeamID = team.ID
			submission.EventID = event.ID
		} else if err != nil {
			return err
		}
		submission.Description = request.Description
		submission.RepoURL = optionalString(request.RepoURL)
		submission.DemoURL = optionalString(request.DemoURL)
		submission.SubmittedAt = now.UTC()
		if created {
			return tx.Create(submission).Error
		}
		// Votes are not touched, they are updated only by voting
		return tx.Model(submission).
			Select("Description", "RepoURL", "DemoURL", "SubmittedAt").
			Updates(submission).
			Error
	})
	if err != nil {
		respError(c, err, "Can not save submission for event %d", event.ID)
		return
	}
	h.hs.Metrics.SubmissionSaved(created)
	if created {
		connector.RespCreated(c, submission)
	} else {
		connector.RespOK(c, submission)
	}
}

func (h *Handler) getSubmissions(c *gin.Context) {
	event, ok := h.findEvent(c)
	if !ok {
		return
	}
	var submissions []models.Submission
	err := h.db.WithContext(c).
		Preload("Team.Members.User").
		Where("event_id = ?", event.ID).
		Order("votes desc, submitted_at asc, id asc").
		Find(&submissions).
		Error
	if err != nil {
		connector.RespServerError(c, "Can not load submissions of event %d, error: %v", event.ID, err)
		return
	}

	votedFor := make(map[uint]bool)
	votesLeft := 0
	user := currentUser(c)
	if user != nil {
		var voted []uint
		err = h.db.WithContext(c).
			Model(&models.Vote{}).
			Where("user_id = ? AND event_id = ?", user.ID, event.ID).
			Pluck("submission_id", &voted).
			Error
		if err != nil {
			connector.RespServerError(c, "Can not load votes of user %s, error: %v", user.ID, err)
			return
		}
		for _, id := range voted {
			votedFor[id] = true
		}
		votesLeft = event.VotesPerUser - len(voted)
	}

	views := make([]apiconn.SubmissionView, 0, len(submissions))
	for _, submission := range submissions {
		view := apiconn.SubmissionView{
			Submission:  submission,
			MemberNames: make([]string, 0),
			HasVoted:    votedFor[submission.ID],
		}
		ownTeam := false
		if submission.Team != nil {
			view.TeamName = submission.Team.Name
			for _, member := range submission.Team.Members {
				if member.User != nil {
					view.MemberNames = append(view.MemberNames, member.User.DisplayName())
				}
				if user != nil && member.UserID == user.ID {
					ownTeam = true
				}
			}
			// Members are listed by name only
			view.Team = nil
		}
		view.CanVote = user != nil && !event.Cancelled && !ownTeam && !view.HasVoted && votesLeft > 0
		views = append(views, view)
	}
	connector.RespOK(c, views)
}

func (h *Handler) vote(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user := currentUser(c)

	result := &apiconn.VoteResult{SubmissionID: id}
	err := h.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		submission := new(models.Submission)
		if err := tx.Preload("Team.Members").First(submission, id).Error; err != nil {
			return err
		}
		event, err := registration.LockEvent(tx, submission.EventID)
		if err != nil {
			return err
		}
		if event.Cancelled {
			return registration.ErrEventCancelled
		}
		if submission.Team != nil && isTeamMember(submission.Team, user.ID) {
			return forbidden("You cannot vote for your own team")
		}

		var votes []models.Vote
		if err := tx.Where("user_id = ? AND event_id = ?", user.ID, event.ID).Find(&votes).Error; err != nil {
			return err
		}
		for _, vote := range votes {
			if vote.SubmissionID == submission.ID {
				return conflict("You have already voted for this submission")
			}
		}
		if len(votes) >= event.VotesPerUser {
			return conflict("You have used all %d votes for this event", event.VotesPerUser)
		}

		err = tx.Create(&models.Vote{
			UserID:       user.ID,
			SubmissionID: submission.ID,
			EventID:      event.ID,
		}).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("You have already voted for this submission")
			}
			return err
		}
		err = tx.Model(&models.Submission{}).
			Where("id = ?", submission.ID).
			UpdateColumn("votes", gorm.Expr("votes + ?", 1)).
			Error
		if err != nil {
			return err
		}
		updated := new(models.Submission)
		if err = tx.First(updated, submission.ID).Error; err != nil {
			return err
		}
		result.Votes = updated.Votes
		result.VotesLeft = event.VotesPerUser - len(votes) - 1
		return nil
	})
	if err != nil {
		respError(c, err, "Can not vote for submission %d", id)
		return
	}
	h.hs.Metrics.Votes.Inc()
	connector.RespOK(c, result)
}
