package registration

import (
	"context"
	"testing"
	"time"

	"hackathon_system/common/config"
	"hackathon_system/common/db"
	"hackathon_system/common/db/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	event *models.Event
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	database, err := db.NewDB(context.Background(), config.DBConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(database) })

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := &models.Event{
		Name:         "May Hack",
		Description:  "Build things",
		StartDate:    now.Add(24 * time.Hour),
		EndDate:      now.Add(72 * time.Hour),
		MaxTeams:     2,
		MaxTeamSize:  3,
		VotesPerUser: 3,
	}
	require.NoError(t, database.Create(event).Error)
	return &fixture{db: database, event: event, now: now}
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	user := &models.User{Email: email}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func confirmedDraft(t *testing.T, captain string, name string, members ...string) *Draft {
	d := NewDraft(captain, 3)
	d.TeamName = name
	require.NoError(t, d.Next())
	for _, member := range members {
		require.NoError(t, d.AddMember(member))
	}
	require.NoError(t, d.Next())
	return d
}

func TestSubmit(t *testing.T) {
	f := newFixture(t)
	captain := f.user(t, "captain@example.org")
	member := f.user(t, "member@example.org")

	d := confirmedDraft(t, captain.Email, "Gophers", "Member@example.org", "new@example.org")
	result, err := Submit(context.Background(), f.db, d, f.event, captain.ID, f.now)
	require.NoError(t, err)
	require.Equal(t, []string{"new@example.org"}, result.PendingInvites)
	require.Equal(t, captain.ID, result.Team.OwnerID)
	require.Equal(t, f.event.ID, result.Registration.EventID)

	var members []models.TeamMember
	require.NoError(t, f.db.Where("team_id = ?", result.Team.ID).Find(&members).Error)
	require.Len(t, members, 2)

	teamID, err := RegisteredTeamID(f.db, f.event.ID, member.ID)
	require.NoError(t, err)
	require.Equal(t, result.Team.ID, teamID)

	_, err = Submit(context.Background(), f.db, confirmedDraft(t, member.Email, "Again"), f.event, member.ID, f.now)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestSubmitRefused(t *testing.T) {
	f := newFixture(t)
	captain := f.user(t, "captain@example.org")

	t.Run("not confirmed", func(t *testing.T) {
		d := NewDraft(captain.Email, 3)
		_, err := Submit(context.Background(), f.db, d, f.event, captain.ID, f.now)
		require.ErrorIs(t, err, ErrNotConfirmed)
	})

	t.Run("deadline", func(t *testing.T) {
		d := confirmedDraft(t, captain.Email, "Late")
		_, err := Submit(context.Background(), f.db, d, f.event, captain.ID, f.event.StartDate.Add(time.Minute))
		require.ErrorIs(t, err, ErrDeadlinePassed)
	})

	t.Run("cancelled", func(t *testing.T) {
		event := *f.event
		event.Cancelled = true
		d := confirmedDraft(t, captain.Email, "Cancelled")
		_, err := Submit(context.Background(), f.db, d, &event, captain.ID, f.now)
		require.ErrorIs(t, err, ErrEventCancelled)
	})

	t.Run("event full", func(t *testing.T) {
		for _, email := range []string{"first@example.org", "second@example.org"} {
			user := f.user(t, email)
			_, err := Submit(context.Background(), f.db, confirmedDraft(t, email, email), f.event, user.ID, f.now)
			require.NoError(t, err)
		}
		_, err := Submit(context.Background(), f.db, confirmedDraft(t, captain.Email, "Third"), f.event, captain.ID, f.now)
		require.ErrorIs(t, err, ErrEventFull)

		var teams int64
		require.NoError(t, f.db.Model(&models.Team{}).Count(&teams).Error)
		require.EqualValues(t, 2, teams)
	})
}

func TestSubmitInviteeAlreadyRegistered(t *testing.T) {
	f := newFixture(t)
	first := f.user(t, "first@example.org")
	second := f.user(t, "second@example.org")
	member := f.user(t, "member@example.org")

	_, err := Submit(context.Background(), f.db, confirmedDraft(t, first.Email, "A", member.Email), f.event, first.ID, f.now)
	require.NoError(t, err)

	_, err = Submit(context.Background(), f.db, confirmedDraft(t, second.Email, "B", member.Email), f.event, second.ID, f.now)
	var registeredErr *MemberRegisteredError
	require.ErrorAs(t, err, &registeredErr)
	require.Equal(t, member.Email, registeredErr.Email)

	var teams int64
	require.NoError(t, f.db.Model(&models.Team{}).Count(&teams).Error)
	require.EqualValues(t, 1, teams)
}

func TestLockEvent(t *testing.T) {
	f := newFixture(t)
	err := f.db.Transaction(func(tx *gorm.DB) error {
		event, err := LockEvent(tx, f.event.ID)
		require.NoError(t, err)
		require.Equal(t, f.event.Name, event.Name)
		return nil
	})
	require.NoError(t, err)

	_, err = LockEvent(f.db, f.event.ID+100)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
