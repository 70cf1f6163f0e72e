package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"collegeskills_backend/internal/config"
	"collegeskills_backend/internal/logger"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/internal/services/razorpay"
	"collegeskills_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PaymentService struct {
	db            *gorm.DB
	paymentRepo   repositories.PaymentRepository
	orderRepo     repositories.OrderRepository
	proposalRepo  repositories.ProposalRepository
	projectRepo   repositories.ProjectRepository
	profileRepo   repositories.ProfileRepository
	userRepo      repositories.UserRepository
	gateway       razorpay.Client
	notifications *NotificationService
	activity      *ActivityService
	cfg           config.RazorpayConfig
}

func NewPaymentService(
	db *gorm.DB,
	paymentRepo repositories.PaymentRepository,
	orderRepo repositories.OrderRepository,
	proposalRepo repositories.ProposalRepository,
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	gateway razorpay.Client,
	notifications *NotificationService,
	activity *ActivityService,
	cfg config.RazorpayConfig,
) *PaymentService {
	return &PaymentService{
		db:            db,
		paymentRepo:   paymentRepo,
		orderRepo:     orderRepo,
		proposalRepo:  proposalRepo,
		projectRepo:   projectRepo,
		profileRepo:   profileRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		notifications: notifications,
		activity:      activity,
		cfg:           cfg,
	}
}

// CreateRazorpayOrder is the client accepting a proposal: it opens the
// escrow order on the gateway and moves the proposal to payment_pending.
// Competing proposals stay open until funds are actually captured.
func (s *PaymentService) CreateRazorpayOrder(ctx context.Context, clientID string, req *dto.CreatePaymentOrderRequest) (*dto.PaymentOrderResponse, error) {
	proposal, err := s.proposalRepo.FindByID(req.ProposalID)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if proposal.Status != models.ProposalStatusPending {
		return nil, apperrors.ErrInvalidStatus("payment", "proposal is not pending")
	}

	project, err := s.projectRepo.FindByID(proposal.ProjectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if project.ClientID != clientID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, apperrors.ErrInvalidStatus("payment", "project is no longer open")
	}

	// Talk to the gateway before persisting anything so a gateway
	// outage leaves no half-open rows behind.
	rzpOrder, err := s.gateway.CreateOrder(ctx, proposal.ProposedPrice, proposal.ID, map[string]string{
		"project_id":  project.ID,
		"proposal_id": proposal.ID,
	})
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "payment", "failed to create gateway order")
	}

	// An earlier attempt may have left a pending_payment order for this
	// proposal; its proposal_id is unique, so reuse it instead of
	// colliding with it.
	order, err := s.orderRepo.FindByProposalID(proposal.ID)
	if err != nil {
		if !errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.InternalError(err)
		}
		order = &models.Order{
			ProjectID:    project.ID,
			ProposalID:   proposal.ID,
			ClientID:     clientID,
			FreelancerID: proposal.FreelancerID,
			Title:        project.Title,
			Price:        proposal.ProposedPrice,
			DeliveryTime: proposal.DeliveryTime,
			Status:       models.OrderStatusPendingPayment,
		}
		if err := s.orderRepo.Create(order); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	payment := &models.Payment{
		OrderID:         order.ID,
		RazorpayOrderID: rzpOrder.ID,
		Amount:          proposal.ProposedPrice,
		Status:          models.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.proposalRepo.UpdateStatus(proposal.ID, models.ProposalStatusPaymentPending); err != nil {
		return nil, apperrors.InternalError(err)
	}

	link := fmt.Sprintf("/orders/%s", order.ID)
	s.notifications.Notify(proposal.FreelancerID, NotificationProposalAccepted,
		fmt.Sprintf("Your proposal for \"%s\" was accepted, escrow funding is in progress", project.Title), &link)
	s.activity.Record(clientID, "payment_order_created", project.Title, &payment.ID)

	return &dto.PaymentOrderResponse{
		PaymentID:       payment.ID,
		OrderID:         order.ID,
		RazorpayOrderID: rzpOrder.ID,
		Amount:          payment.Amount,
		Currency:        s.cfg.Currency,
		KeyID:           s.cfg.KeyID,
	}, nil
}

// razorpayWebhookEvent is the slice of the webhook payload we care about.
type razorpayWebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// ProcessWebhookEvent handles a verified webhook body. Unknown events
// are ignored.
func (s *PaymentService) ProcessWebhookEvent(body []byte) error {
	var event razorpayWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	var razorpayOrderID, transferID string
	switch event.Event {
	case "payment.captured":
		razorpayOrderID = event.Payload.Payment.Entity.OrderID
		transferID = s.lookupCaptureTransfer(event.Payload.Payment.Entity.ID)
	case "order.paid":
		razorpayOrderID = event.Payload.Order.Entity.ID
	default:
		logger.Info("ignoring webhook event", "event", event.Event)
		return nil
	}
	if razorpayOrderID == "" {
		return fmt.Errorf("webhook event %s carried no order id", event.Event)
	}

	return s.MarkAsFunded(razorpayOrderID, transferID)
}

// lookupCaptureTransfer asks the gateway whether a transfer was already
// attached to the captured payment. Returns "" when there is none; a
// lookup failure must not lose the capture, so it only logs.
func (s *PaymentService) lookupCaptureTransfer(razorpayPaymentID string) string {
	if razorpayPaymentID == "" {
		return ""
	}
	transfers, err := s.gateway.FetchTransfersForPayment(context.Background(), razorpayPaymentID)
	if err != nil {
		logger.Warn("transfer lookup failed for captured payment",
			"razorpay_payment_id", razorpayPaymentID, "error", err)
		return ""
	}
	if len(transfers) == 0 {
		return ""
	}
	return transfers[0].ID
}

// MarkAsFunded transitions the whole chain after funds are captured:
// payment to funded, order to in_progress, project to in_progress with
// the winning freelancer selected, the winning proposal to accepted and
// every competing proposal to rejected. A transfer id already attached
// at capture is stored on the payment. Runs in one transaction and is
// idempotent: a payment already past pending is left untouched.
func (s *PaymentService) MarkAsFunded(razorpayOrderID, transferID string) error {
	var fundedOrder *models.Order
	var fundedProject *models.ProjectRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		proposalRepo := s.proposalRepo.WithTx(tx)
		projectRepo := s.projectRepo.WithTx(tx)

		payment, err := paymentRepo.FindByRazorpayOrderID(razorpayOrderID)
		if err != nil {
			return err
		}
		if payment.Status != models.PaymentStatusPending {
			// Webhook retry, already processed.
			return nil
		}

		payment.Status = models.PaymentStatusFunded
		if transferID != "" {
			payment.RazorpayTransferID = &transferID
		}
		if err := paymentRepo.Update(payment); err != nil {
			return err
		}

		order, err := orderRepo.FindByID(payment.OrderID)
		if err != nil {
			return err
		}
		if err := orderRepo.UpdateStatus(order.ID, models.OrderStatusInProgress); err != nil {
			return err
		}

		project, err := projectRepo.FindByID(order.ProjectID)
		if err != nil {
			return err
		}
		project.Status = models.ProjectStatusInProgress
		project.SelectedFreelancerID = &order.FreelancerID
		if err := projectRepo.Update(project); err != nil {
			return err
		}

		if err := proposalRepo.UpdateStatus(order.ProposalID, models.ProposalStatusAccepted); err != nil {
			return err
		}
		if err := proposalRepo.RejectSiblings(project.ID, order.ProposalID); err != nil {
			return err
		}

		fundedOrder = order
		fundedProject = project
		return nil
	})
	if err != nil {
		return err
	}

	// nil when the webhook was a retry.
	if fundedOrder != nil {
		link := fmt.Sprintf("/orders/%s", fundedOrder.ID)
		s.notifications.Notify(fundedOrder.FreelancerID, NotificationProposalAccepted,
			fmt.Sprintf("Your proposal for \"%s\" was accepted and funded", fundedProject.Title), &link)
		s.notifications.Notify(fundedOrder.ClientID, NotificationOrderFunded,
			fmt.Sprintf("Escrow funded for \"%s\", work can begin", fundedProject.Title), &link)
	}
	return nil
}

// ConnectPayoutAccount opens a Razorpay linked account for the
// freelancer so released escrow can be transferred out.
func (s *PaymentService) ConnectPayoutAccount(ctx context.Context, freelancerID string, req *dto.ConnectPayoutAccountRequest) error {
	user, err := s.userRepo.FindByID(freelancerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleFreelancer {
		return apperrors.ErrInsufficientPermissions
	}

	profile, err := s.profileRepo.FindByUserID(freelancerID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if profile.RazorpayAccountID != nil {
		return apperrors.ErrInvalidOperation("payment", "payout account already connected")
	}

	account, err := s.gateway.CreateLinkedAccount(ctx, razorpay.AccountRequest{
		Email:        user.Email,
		Phone:        req.Phone,
		LegalName:    req.LegalName,
		BusinessType: req.BusinessType,
	})
	if err != nil {
		return apperrors.ErrExternalService(err, "payment", "failed to create payout account")
	}

	if err := s.profileRepo.SetPayoutAccount(profile.ID, account.ID); err != nil {
		return apperrors.InternalError(err)
	}

	s.activity.Record(freelancerID, "payout_account_connected", account.ID, nil)
	return nil
}

// ReleaseEscrow pays the freelancer for a delivered order and closes
// out the order and project.
func (s *PaymentService) ReleaseEscrow(ctx context.Context, clientID, orderID string) error {
	order, err := s.orderRepo.FindByID(orderID)
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
		return apperrors.ErrInvalidStatus("payment", "order has not been delivered")
	}

	payment, err := s.paymentRepo.FindByOrderID(orderID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if payment.Status != models.PaymentStatusFunded {
		return apperrors.ErrInvalidStatus("payment", "escrow is not funded")
	}

	freelancer, err := s.profileRepo.FindByUserID(order.FreelancerID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if freelancer.RazorpayAccountID == nil {
		return apperrors.ErrNoPayoutAccount
	}

	captured, err := s.gateway.FetchPaymentForOrder(ctx, payment.RazorpayOrderID)
	if err != nil {
		return apperrors.ErrExternalService(err, "payment", "failed to locate captured payment")
	}

	transfer, err := s.gateway.CreateTransfer(ctx, captured.ID, payment.Amount, *freelancer.RazorpayAccountID)
	if err != nil {
		return apperrors.ErrExternalService(err, "payment", "failed to transfer funds")
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		projectRepo := s.projectRepo.WithTx(tx)

		payment.Status = models.PaymentStatusReleased
		payment.RazorpayTransferID = &transfer.ID
		if err := paymentRepo.Update(payment); err != nil {
			return err
		}

		order.Status = models.OrderStatusCompleted
		order.CompletedAt = &now
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		return projectRepo.UpdateStatus(order.ProjectID, models.ProjectStatusCompleted)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	link := fmt.Sprintf("/orders/%s", order.ID)
	s.notifications.Notify(order.FreelancerID, NotificationPaymentReleased,
		fmt.Sprintf("Payment released for \"%s\"", order.Title), &link)
	s.activity.Record(clientID, "escrow_released", order.Title, &order.ID)
	return nil
}

func (s *PaymentService) GetByOrderID(orderID, requesterID string) (*dto.PaymentResponse, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if order.ClientID != requesterID && order.FreelancerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	payment, err := s.paymentRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.PaymentResponse{
		ID:              payment.ID,
		OrderID:         payment.OrderID,
		RazorpayOrderID: payment.RazorpayOrderID,
		Amount:          payment.Amount,
		Status:          string(payment.Status),
		CreatedAt:       payment.CreatedAt.Format(time.RFC3339),
	}, nil
}
