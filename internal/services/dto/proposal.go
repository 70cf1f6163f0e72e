package dto

type CreateProposalRequest struct {
	ProjectID     string  `json:"project_id" validate:"required,uuid"`
	CoverLetter   string  `json:"cover_letter" validate:"required,min=20,max=5000"`
	ProposedPrice float64 `json:"proposed_price" validate:"required,gt=0"`
	DeliveryTime  int     `json:"delivery_time" validate:"required,min=1,max=365"`
}

type ProposalResponse struct {
	ID            string  `json:"id"`
	ProjectID     string  `json:"project_id"`
	FreelancerID  string  `json:"freelancer_id"`
	CoverLetter   string  `json:"cover_letter"`
	ProposedPrice float64 `json:"proposed_price"`
	DeliveryTime  int     `json:"delivery_time"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}
