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

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repositories.NewOrderRepository(db),
		newNotificationService(db),
		newActivityService(db),
	)
}

func TestOrderService_Deliver(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusInProgress)

	err := svc.Deliver(order.ID, freelancer.ID, &dto.DeliverOrderRequest{
		Message: "Final build deployed, credentials in the chat.",
	})
	require.NoError(t, err)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, reloaded.Status)
	require.NotNil(t, reloaded.DeliveryMessage)
	assert.Equal(t, "Final build deployed, credentials in the chat.", *reloaded.DeliveryMessage)
	assert.NotNil(t, reloaded.DeliveredAt)

	notifs := notificationsFor(t, db, client.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, NotificationOrderDelivered, notifs[0].Type)
}

func TestOrderService_Deliver_NotInProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusPendingPayment)

	err := svc.Deliver(order.ID, freelancer.ID, &dto.DeliverOrderRequest{Message: "too early"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestOrderService_Deliver_OnlyAssignedFreelancer(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	other, _ := seedUser(t, db, "other@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusInProgress)

	err := svc.Deliver(order.ID, other.ID, &dto.DeliverOrderRequest{Message: "not mine"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestOrderService_Dispute(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusDelivered)

	require.NoError(t, svc.Dispute(order.ID, client.ID))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusDisputed, reloaded.Status)

	// The freelancer is told the order is disputed, not complete.
	notifs := notificationsFor(t, db, freelancer.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, NotificationOrderDisputed, notifs[0].Type)
}

func TestOrderService_Dispute_NotDelivered(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusInProgress)

	err := svc.Dispute(order.ID, client.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestOrderService_ListForUser(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusInProgress)
	seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusCompleted)

	asClient, err := svc.ListForUser(client.ID, string(models.UserRoleClient))
	require.NoError(t, err)
	assert.Len(t, asClient, 2)

	asFreelancer, err := svc.ListForUser(freelancer.ID, string(models.UserRoleFreelancer))
	require.NoError(t, err)
	assert.Len(t, asFreelancer, 2)

	stranger, _ := seedUser(t, db, "stranger@example.com", models.UserRoleClient)
	none, err := svc.ListForUser(stranger.ID, string(models.UserRoleClient))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderService_GetByID_Participants(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	stranger, _ := seedUser(t, db, "stranger@example.com", models.UserRoleClient)
	order := seedOrder(t, db, client.ID, freelancer.ID, models.OrderStatusInProgress)

	_, err := svc.GetByID(order.ID, client.ID)
	require.NoError(t, err)
	_, err = svc.GetByID(order.ID, freelancer.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(order.ID, stranger.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}
