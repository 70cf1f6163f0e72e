package dto

type CreatePaymentOrderRequest struct {
	ProposalID string `json:"proposal_id" validate:"required,uuid"`
}

type PaymentOrderResponse struct {
	PaymentID       string  `json:"payment_id"`
	OrderID         string  `json:"order_id"`
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	KeyID           string  `json:"key_id"`
}

type PaymentResponse struct {
	ID              string  `json:"id"`
	OrderID         string  `json:"order_id"`
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

type ConnectPayoutAccountRequest struct {
	Phone        string `json:"phone" validate:"required,min=10,max=15"`
	LegalName    string `json:"legal_name" validate:"required,min=2,max=200"`
	BusinessType string `json:"business_type" validate:"required,oneof=individual proprietorship partnership"`
}

type OrderResponse struct {
	ID              string  `json:"id"`
	ProjectID       string  `json:"project_id"`
	ProposalID      string  `json:"proposal_id"`
	ClientID        string  `json:"client_id"`
	FreelancerID    string  `json:"freelancer_id"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	DeliveryTime    int     `json:"delivery_time"`
	Status          string  `json:"status"`
	DeliveryMessage *string `json:"delivery_message,omitempty"`
	DeliveredAt     *string `json:"delivered_at,omitempty"`
	CompletedAt     *string `json:"completed_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type DeliverOrderRequest struct {
	Message string `json:"message" validate:"required,min=1,max=5000"`
}
