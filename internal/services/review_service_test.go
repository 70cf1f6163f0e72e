package services

import (
	"testing"

	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repositories.NewReviewRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewProfileRepository(db),
		newNotificationService(db),
	)
}

func seedOrder(t *testing.T, db *gorm.DB, clientID, freelancerID string, status models.OrderStatus) *models.Order {
	t.Helper()

	project := seedProject(t, db, clientID, nil)
	proposal := seedProposal(t, db, project.ID, freelancerID, models.ProposalStatusAccepted)

	order := &models.Order{
		ProjectID:    project.ID,
		ProposalID:   proposal.ID,
		ClientID:     clientID,
		FreelancerID: freelancerID,
		Title:        project.Title,
		Price:        proposal.ProposedPrice,
		DeliveryTime: proposal.DeliveryTime,
		Status:       status,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestReviewService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, freelancerProfile := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusCompleted)

	resp, err := svc.Create(client.ID, &dto.CreateReviewRequest{
		OrderID: order.ID,
		Rating:  5,
		Comment: "Delivered early and handled feedback well.",
	})
	require.NoError(t, err)
	assert.Equal(t, freelancer.ID, resp.RevieweeID)
	assert.Equal(t, 5, resp.Rating)

	// Rating aggregate lands on the freelancer's profile.
	var reloaded models.Profile
	require.NoError(t, db.First(&reloaded, "id = ?", freelancerProfile.ID).Error)
	require.NotNil(t, reloaded.AverageRating)
	assert.InDelta(t, 5.0, *reloaded.AverageRating, 1e-9)
	assert.Equal(t, 1, reloaded.TotalReviews)

	notifs := notificationsFor(t, db, freelancer.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, NotificationNewReview, notifs[0].Type)
}

func TestReviewService_Create_AveragesAcrossOrders(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, freelancerProfile := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	first := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusCompleted)
	second := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusCompleted)

	_, err := svc.Create(client.ID, &dto.CreateReviewRequest{OrderID: first.ID, Rating: 5})
	require.NoError(t, err)
	_, err = svc.Create(client.ID, &dto.CreateReviewRequest{OrderID: second.ID, Rating: 2})
	require.NoError(t, err)

	var reloaded models.Profile
	require.NoError(t, db.First(&reloaded, "id = ?", freelancerProfile.ID).Error)
	require.NotNil(t, reloaded.AverageRating)
	assert.InDelta(t, 3.5, *reloaded.AverageRating, 1e-9)
	assert.Equal(t, 2, reloaded.TotalReviews)
}

func TestReviewService_Create_OncePerOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusCompleted)

	_, err := svc.Create(client.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 4})
	require.NoError(t, err)

	_, err = svc.Create(client.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 1})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestReviewService_Create_OrderNotCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusInProgress)

	_, err := svc.Create(client.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 4})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestReviewService_Create_OnlyOrderClient(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	other, _ := seedUser(t, db, "other@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusCompleted)

	_, err := svc.Create(other.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 4})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestReviewService_ListForUser(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusCompleted)

	_, err := svc.Create(client.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 4, Comment: "Solid work"})
	require.NoError(t, err)

	reviews, err := svc.ListForUser(freelancer.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Solid work", reviews[0].Comment)
}
