package services

import (
	"errors"
	"fmt"
	"time"

	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

type OrderService struct {
	orderRepo     repositories.OrderRepository
	notifications *NotificationService
	activity      *ActivityService
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	notifications *NotificationService,
	activity *ActivityService,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		notifications: notifications,
		activity:      activity,
	}
}

func (s *OrderService) GetByID(id, requesterID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if order.ClientID != requesterID && order.FreelancerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *OrderService) ListForUser(userID, role string) ([]dto.OrderResponse, error) {
	var orders []models.Order
	var err error
	if role == string(models.UserRoleFreelancer) {
		orders, err = s.orderRepo.ListByFreelancer(userID)
	} else {
		orders, err = s.orderRepo.ListByClient(userID)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out, nil
}

// Deliver marks the work as handed over and waiting on the client.
func (s *OrderService) Deliver(id, freelancerID string, req *dto.DeliverOrderRequest) error {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if order.FreelancerID != freelancerID {
		return apperrors.ErrInsufficientPermissions
	}
	if order.Status != models.OrderStatusInProgress {
		return apperrors.ErrInvalidStatus("order", "only in-progress orders can be delivered")
	}

	now := time.Now()
	order.Status = models.OrderStatusDelivered
	order.DeliveryMessage = &req.Message
	order.DeliveredAt = &now
	if err := s.orderRepo.Update(order); err != nil {
		return apperrors.InternalError(err)
	}

	link := fmt.Sprintf("/orders/%s", order.ID)
	s.notifications.Notify(order.ClientID, NotificationOrderDelivered,
		fmt.Sprintf("\"%s\" has been delivered", order.Title), &link)
	s.activity.Record(freelancerID, "order_delivered", order.Title, &order.ID)
	return nil
}

// Dispute flags a delivered order for admin attention instead of
// releasing the escrow.
func (s *OrderService) Dispute(id, clientID string) error {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if order.ClientID != clientID {
		return apperrors.ErrInsufficientPermissions
	}
	if order.Status != models.OrderStatusDelivered {
		return apperrors.ErrInvalidStatus("order", "only delivered orders can be disputed")
	}

	if err := s.orderRepo.UpdateStatus(id, models.OrderStatusDisputed); err != nil {
		return apperrors.InternalError(err)
	}

	link := fmt.Sprintf("/orders/%s", order.ID)
	s.notifications.Notify(order.FreelancerID, NotificationOrderDisputed,
		fmt.Sprintf("\"%s\" was disputed by the client", order.Title), &link)
	s.activity.Record(clientID, "order_disputed", order.Title, &order.ID)
	return nil
}

func toOrderResponse(o *models.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:              o.ID,
		ProjectID:       o.ProjectID,
		ProposalID:      o.ProposalID,
		ClientID:        o.ClientID,
		FreelancerID:    o.FreelancerID,
		Title:           o.Title,
		Price:           o.Price,
		DeliveryTime:    o.DeliveryTime,
		Status:          string(o.Status),
		DeliveryMessage: o.DeliveryMessage,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
	}
	if o.DeliveredAt != nil {
		t := o.DeliveredAt.Format(time.RFC3339)
		resp.DeliveredAt = &t
	}
	if o.CompletedAt != nil {
		t := o.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &t
	}
	return resp
}
