package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"planline/models"
)

func TestClientCRUD(t *testing.T) {
	r := setupTestStore(t)

	created, err := r.CreateClient(models.ClientInput{
		Code:         "ACME",
		Name:         "Acme Corp",
		ContactEmail: "ops@acme.example",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := r.GetClient(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", got.Name)

	byCode, err := r.GetClientByCode("ACME")
	require.NoError(t, err)
	require.Equal(t, created.ID, byCode.ID)

	updated, err := r.UpdateClient(created.ID, models.ClientInput{
		Code: "ACME",
		Name: "Acme Corporation",
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Corporation", updated.Name)

	require.NoError(t, r.DeleteClient(created.ID))
	_, err = r.GetClient(created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateClientDuplicateCode(t *testing.T) {
	r := setupTestStore(t)

	_, err := r.CreateClient(models.ClientInput{Code: "DUP", Name: "First"})
	require.NoError(t, err)

	_, err = r.CreateClient(models.ClientInput{Code: "DUP", Name: "Second"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestGetClientNotFound(t *testing.T) {
	r := setupTestStore(t)

	_, err := r.GetClient(9999)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = r.GetClientByCode("NOPE")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListClientsActiveFilterAndPagination(t *testing.T) {
	r := setupTestStore(t)

	inactive := false
	_, err := r.CreateClient(models.ClientInput{Code: "A1", Name: "Active one"})
	require.NoError(t, err)
	_, err = r.CreateClient(models.ClientInput{Code: "A2", Name: "Active two"})
	require.NoError(t, err)
	_, err = r.CreateClient(models.ClientInput{Code: "A3", Name: "Gone", IsActive: &inactive})
	require.NoError(t, err)

	all, total, err := r.ListClients(Page{}, false)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, all, 3)

	active, total, err := r.ListClients(Page{}, true)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, active, 2)

	firstPage, total, err := r.ListClients(Page{Number: 1, Size: 2}, false)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, firstPage, 2)

	secondPage, _, err := r.ListClients(Page{Number: 2, Size: 2}, false)
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
}

func TestDeleteClientWithOpenProjects(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)
	project := testProject(t, r, client.ID)

	err := r.DeleteClient(client.ID)
	require.ErrorIs(t, err, ErrConflict)

	// Archiving the project unblocks the delete.
	_, err = r.UpdateProject(project.ID, models.ProjectInput{
		Code:     project.Code,
		Name:     project.Name,
		ClientID: client.ID,
		Status:   models.ProjectArchived,
	})
	require.NoError(t, err)
	require.NoError(t, r.DeleteClient(client.ID))
}

func TestClientProjectStats(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)
	testProject(t, r, client.ID)
	testProject(t, r, client.ID)

	draft, err := r.CreateProject(models.ProjectInput{
		Code:     "PRJ-DRAFT",
		Name:     "Draft project",
		ClientID: client.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.ProjectDraft, draft.Status)

	stats, err := r.ClientProjectStats(client.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.Total)
	require.Equal(t, 2, stats.ByStatus[models.ProjectActive])
	require.Equal(t, 1, stats.ByStatus[models.ProjectDraft])

	projects, err := r.ClientProjects(client.ID)
	require.NoError(t, err)
	require.Len(t, projects, 3)
}
