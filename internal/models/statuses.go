package models

type UserStatus string
type UserRole string
type ProjectStatus string
type ProposalStatus string
type OrderStatus string
type PaymentStatus string
type VerificationStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleFreelancer UserRole = "freelancer"
	UserRoleClient     UserRole = "client"
	UserRoleAdmin      UserRole = "admin"

	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"

	ProposalStatusPending        ProposalStatus = "pending"
	ProposalStatusPaymentPending ProposalStatus = "payment_pending"
	ProposalStatusAccepted       ProposalStatus = "accepted"
	ProposalStatusRejected       ProposalStatus = "rejected"

	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusActive         OrderStatus = "active"
	OrderStatusInProgress     OrderStatus = "in_progress"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusDisputed       OrderStatus = "disputed"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFunded    PaymentStatus = "funded"
	PaymentStatusReleased  PaymentStatus = "released"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"

	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)
