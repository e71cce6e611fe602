package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardSteps(t *testing.T) {
	d := NewDraft("Captain@Example.org", 3)
	require.Equal(t, StepTeam, d.Step)
	require.Equal(t, "captain@example.org", d.Captain())

	require.ErrorIs(t, d.Next(), ErrTeamNameRequired)
	d.TeamName = "   "
	require.ErrorIs(t, d.Next(), ErrTeamNameRequired)
	require.Equal(t, StepTeam, d.Step)

	d.TeamName = "Gophers"
	require.NoError(t, d.Next())
	require.Equal(t, StepMembers, d.Step)
	require.NoError(t, d.Next())
	require.Equal(t, StepConfirm, d.Step)
	require.NoError(t, d.Next())
	require.Equal(t, StepConfirm, d.Step)

	d.Back()
	require.Equal(t, StepMembers, d.Step)
	d.Back()
	require.Equal(t, StepTeam, d.Step)
	d.Back()
	require.Equal(t, StepTeam, d.Step)
}

func TestWizardMembers(t *testing.T) {
	d := NewDraft("captain@example.org", 3)

	require.NoError(t, d.AddMember(""))
	require.NoError(t, d.AddMember("  "))
	require.Len(t, d.Members, 1)

	require.NoError(t, d.AddMember("a@example.org"))
	require.ErrorIs(t, d.AddMember(" A@example.org "), ErrAlreadyMember)
	require.ErrorIs(t, d.AddMember("captain@example.org"), ErrAlreadyMember)
	require.NoError(t, d.AddMember("b@example.org"))

	err := d.AddMember("c@example.org")
	var fullErr *TeamFullError
	require.ErrorAs(t, err, &fullErr)
	require.Equal(t, "Team size cannot exceed 3 members", err.Error())

	require.ErrorIs(t, d.RemoveMember("captain@example.org"), ErrRemoveCaptain)
	require.NoError(t, d.RemoveMember("a@example.org"))
	require.NoError(t, d.RemoveMember("unknown@example.org"))
	require.Equal(t, []string{"captain@example.org", "b@example.org"}, d.Members)
	require.Equal(t, []string{"b@example.org"}, d.Invited())

	require.NoError(t, d.AddMember("c@example.org"))
}

func TestCheckCanJoin(t *testing.T) {
	assert.NoError(t, CheckCanJoin(0, false, 1))
	assert.ErrorIs(t, CheckCanJoin(0, true, 1), ErrAlreadyMember)
	assert.EqualError(t, CheckCanJoin(1, false, 1), "Team size cannot exceed 1 members")
	assert.NoError(t, CheckCanJoin(100, false, 0))
}
