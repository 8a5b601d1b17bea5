package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"planline/models"
)

func TestCreateTeamWithLead(t *testing.T) {
	r := setupTestStore(t)

	lead := testEmployee(t, r)
	team, err := r.CreateTeam(models.TeamInput{
		Name:   "Platform",
		LeadID: &lead.ID,
	})
	require.NoError(t, err)

	members, err := r.TeamMembers(team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, lead.ID, members[0].EmployeeID)
	require.Equal(t, "lead", members[0].Role)

	_, err = r.CreateTeam(models.TeamInput{Name: "Platform"})
	require.ErrorIs(t, err, ErrDuplicate)

	missing := uint(9999)
	_, err = r.CreateTeam(models.TeamInput{Name: "Ghosts", LeadID: &missing})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTeamLeadMustBeMember(t *testing.T) {
	r := setupTestStore(t)

	team := testTeam(t, r)
	outsider := testEmployee(t, r)

	_, err := r.UpdateTeam(team.ID, models.TeamInput{
		Name:   team.Name,
		LeadID: &outsider.ID,
	})
	require.ErrorIs(t, err, ErrConflict)

	_, err = r.AddTeamMember(team.ID, models.TeamMemberInput{EmployeeID: outsider.ID})
	require.NoError(t, err)

	updated, err := r.UpdateTeam(team.ID, models.TeamInput{
		Name:   team.Name,
		LeadID: &outsider.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.LeadID)
	require.Equal(t, outsider.ID, *updated.LeadID)
}

func TestTeamMembership(t *testing.T) {
	r := setupTestStore(t)

	team := testTeam(t, r)
	employee := testEmployee(t, r)

	_, err := r.AddTeamMember(team.ID, models.TeamMemberInput{EmployeeID: employee.ID, Role: "developer"})
	require.NoError(t, err)

	_, err = r.AddTeamMember(team.ID, models.TeamMemberInput{EmployeeID: employee.ID})
	require.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, r.RemoveTeamMember(team.ID, employee.ID))
	err = r.RemoveTeamMember(team.ID, employee.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveTeamLeadClearsLead(t *testing.T) {
	r := setupTestStore(t)

	lead := testEmployee(t, r)
	team, err := r.CreateTeam(models.TeamInput{Name: "Led team", LeadID: &lead.ID})
	require.NoError(t, err)

	require.NoError(t, r.RemoveTeamMember(team.ID, lead.ID))

	got, err := r.GetTeam(team.ID)
	require.NoError(t, err)
	require.Nil(t, got.LeadID)
}

func TestDeleteTeamRemovesMembers(t *testing.T) {
	r := setupTestStore(t)

	team := testTeam(t, r)
	employee := testEmployee(t, r)
	_, err := r.AddTeamMember(team.ID, models.TeamMemberInput{EmployeeID: employee.ID})
	require.NoError(t, err)

	require.NoError(t, r.DeleteTeam(team.ID))

	_, err = r.GetTeam(team.ID)
	require.ErrorIs(t, err, ErrNotFound)

	teams, err := r.EmployeeTeams(employee.ID)
	require.NoError(t, err)
	require.Empty(t, teams)
}

func TestTeamCapacity(t *testing.T) {
	r := setupTestStore(t)

	team := testTeam(t, r)

	empty, err := r.TeamCapacity(team.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, empty.MemberCount)
	require.EqualValues(t, 0, empty.WeeklyCapacity)

	full := testEmployee(t, r)
	half, err := r.CreateEmployee(models.EmployeeInput{
		Code:           "E-HALF",
		FirstName:      "Part",
		LastName:       "Timer",
		Email:          "part@example.com",
		WeeklyCapacity: 20,
	})
	require.NoError(t, err)

	_, err = r.AddTeamMember(team.ID, models.TeamMemberInput{EmployeeID: full.ID})
	require.NoError(t, err)
	_, err = r.AddTeamMember(team.ID, models.TeamMemberInput{EmployeeID: half.ID})
	require.NoError(t, err)

	capacity, err := r.TeamCapacity(team.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, capacity.MemberCount)
	require.EqualValues(t, 60, capacity.WeeklyCapacity)
}
