package repositories_test

import (
	"testing"

	"zipmyproject/internal/models"
	"zipmyproject/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockRepos(t *testing.T) (*repositories.MockPurchaseRepository, *repositories.MockProjectRepository, *repositories.MockUserRepository) {
	t.Helper()
	projects := repositories.NewMockProjectRepository()
	users := repositories.NewMockUserRepository()
	return repositories.NewMockPurchaseRepository(projects, users), projects, users
}

func TestMockPurchaseRepository_CreateWithGrant(t *testing.T) {
	repo, _, _ := setupMockRepos(t)

	order := &models.Order{UserID: "u1", ProjectID: "p1", Amount: 2999, PaymentStatus: models.PaymentStatusCompleted}
	grant := &models.UserDownload{UserID: "u1", ProjectID: "p1"}

	require.NoError(t, repo.CreateWithGrant(order, grant))
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, order.ID, grant.OrderID)

	stored, err := repo.GetGrant("u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.DownloadCount)

	// A second grant for the same pair is refused, like the unique index.
	err = repo.CreateWithGrant(
		&models.Order{UserID: "u1", ProjectID: "p1", Amount: 2999},
		&models.UserDownload{UserID: "u1", ProjectID: "p1"},
	)
	assert.ErrorIs(t, err, repositories.ErrDuplicateGrant)

	// Other pairs are unaffected.
	require.NoError(t, repo.CreateWithGrant(
		&models.Order{UserID: "u2", ProjectID: "p1", Amount: 2999},
		&models.UserDownload{UserID: "u2", ProjectID: "p1"},
	))
}

func TestMockPurchaseRepository_RecordDownload(t *testing.T) {
	repo, _, _ := setupMockRepos(t)

	require.NoError(t, repo.CreateWithGrant(
		&models.Order{UserID: "u1", ProjectID: "p1", Amount: 2999},
		&models.UserDownload{UserID: "u1", ProjectID: "p1"},
	))

	require.NoError(t, repo.RecordDownload("u1", "p1"))
	require.NoError(t, repo.RecordDownload("u1", "p1"))

	grant, err := repo.GetGrant("u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, grant.DownloadCount)
	assert.NotNil(t, grant.LastDownloadedAt)

	// No grant, no counter.
	err = repo.RecordDownload("u2", "p1")
	assert.ErrorIs(t, err, repositories.ErrGrantNotFound)
}

func TestMockPurchaseRepository_ListPurchases(t *testing.T) {
	repo, projects, _ := setupMockRepos(t)

	project := &models.Project{
		Title:        "Chat Application",
		Description:  "x",
		Price:        1999,
		DownloadLink: "https://assets.example.com/chat.zip",
	}
	require.NoError(t, projects.Create(project))

	require.NoError(t, repo.CreateWithGrant(
		&models.Order{UserID: "u1", ProjectID: project.ID, Amount: 1999},
		&models.UserDownload{UserID: "u1", ProjectID: project.ID},
	))
	require.NoError(t, repo.RecordDownload("u1", project.ID))

	purchases, err := repo.ListPurchases("u1")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, project.ID, purchases[0].ID)
	assert.Equal(t, "Chat Application", purchases[0].Title)
	assert.Equal(t, "https://assets.example.com/chat.zip", purchases[0].DownloadLink)
	assert.Equal(t, 1999.0, purchases[0].Amount)
	assert.Equal(t, 1, purchases[0].DownloadCount)

	purchases, err = repo.ListPurchases("u2")
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestMockPurchaseRepository_GetAllOrders(t *testing.T) {
	repo, projects, users := setupMockRepos(t)

	buyer := &models.User{Name: "Buyer", Email: "buyer@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(buyer))
	project := &models.Project{Title: "Chat Application", Description: "x", Price: 1999}
	require.NoError(t, projects.Create(project))

	require.NoError(t, repo.CreateWithGrant(
		&models.Order{UserID: buyer.ID, ProjectID: project.ID, Amount: 1999, PaymentStatus: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodRazorpay},
		&models.UserDownload{UserID: buyer.ID, ProjectID: project.ID},
	))

	orders, err := repo.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 1999.0, orders[0].Amount)
	assert.Equal(t, "buyer@example.com", orders[0].User.Email)
	assert.Equal(t, "Chat Application", orders[0].Project.Title)
}
