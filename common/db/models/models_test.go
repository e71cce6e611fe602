package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func fixtureDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	for _, model := range All() {
		require.NoError(t, db.AutoMigrate(model))
	}
	return db
}

func TestUserSkills(t *testing.T) {
	db := fixtureDb(t)
	user := User{
		Email:  "ada@example.org",
		Skills: StringList{"go", "postgres"},
	}
	require.NoError(t, db.Create(&user).Error)
	require.NotEqual(t, uuid.Nil, user.ID)

	var newUser User
	require.NoError(t, db.First(&newUser, "id = ?", user.ID).Error)
	require.Equal(t, user.Skills, newUser.Skills)
	require.Equal(t, user.ID, newUser.ID)

	empty := User{Email: "bob@example.org"}
	require.NoError(t, db.Create(&empty).Error)
	require.NoError(t, db.First(&newUser, "id = ?", empty.ID).Error)
	require.Empty(t, newUser.Skills)
}

func TestEventDeadlinesDefault(t *testing.T) {
	db := fixtureDb(t)
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	event := Event{
		Name:      "Spring Hack",
		StartDate: start,
		EndDate:   start.Add(48 * time.Hour),
	}
	require.NoError(t, db.Create(&event).Error)

	var newEvent Event
	require.NoError(t, db.First(&newEvent, event.ID).Error)
	require.True(t, newEvent.StartDate.Equal(start))
	require.True(t, newEvent.RegistrationDeadline.Equal(start))
	require.True(t, newEvent.SubmissionDeadline.Equal(start.Add(48*time.Hour)))
}

func TestEventHelpers(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	event := Event{
		Rules:     "Be kind\n\n  Ship something  \n",
		StartDate: start,
		EndDate:   start.Add(24 * time.Hour),
	}
	require.Equal(t, []string{"Be kind", "Ship something"}, event.RulesList())
	require.Equal(t, []string{}, (&Event{}).RulesList())

	require.True(t, event.RegistrationOpen(start))
	require.False(t, event.RegistrationOpen(start.Add(time.Second)))
	require.True(t, event.SubmissionOpen(start.Add(24*time.Hour)))
	require.False(t, event.SubmissionOpen(start.Add(25*time.Hour)))

	event.Cancelled = true
	require.False(t, event.RegistrationOpen(start.Add(-time.Hour)))
	require.Equal(t, "cancelled", string(event.Status(start)))
}

func TestSubmissionUniquePerTeamEvent(t *testing.T) {
	db := fixtureDb(t)
	owner := User{Email: "owner@example.org"}
	require.NoError(t, db.Create(&owner).Error)
	team := Team{Name: "Gophers", OwnerID: owner.ID}
	require.NoError(t, db.Create(&team).Error)

	require.NoError(t, db.Create(&Submission{TeamID: team.ID, EventID: 1, Description: "first"}).Error)
	err := db.Create(&Submission{TeamID: team.ID, EventID: 1, Description: "second"}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	require.NoError(t, db.Create(&Submission{TeamID: team.ID, EventID: 2, Description: "other event"}).Error)
}

func TestTeamMembersPreload(t *testing.T) {
	db := fixtureDb(t)
	owner := User{Email: "owner@example.org", FullName: "Grace Hopper"}
	member := User{Email: "member@example.org", DiscordUsername: "linus"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&member).Error)

	team := Team{Name: "Compilers", OwnerID: owner.ID}
	require.NoError(t, db.Create(&team).Error)
	require.NoError(t, db.Create(&TeamMember{TeamID: team.ID, UserID: owner.ID}).Error)
	require.NoError(t, db.Create(&TeamMember{TeamID: team.ID, UserID: member.ID}).Error)

	var loaded Team
	require.NoError(t, db.Preload("Members.User").First(&loaded, team.ID).Error)
	require.Len(t, loaded.Members, 2)
	names := []string{loaded.Members[0].User.DisplayName(), loaded.Members[1].User.DisplayName()}
	require.ElementsMatch(t, []string{"Grace Hopper", "linus"}, names)
}
