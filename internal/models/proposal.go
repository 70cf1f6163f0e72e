package models

type Proposal struct {
	BaseModel
	ProjectID     string `gorm:"not null;index:idx_proposals_project;index:idx_proposals_project_freelancer"`
	FreelancerID  string `gorm:"not null;index;index:idx_proposals_project_freelancer"`
	CoverLetter   string `gorm:"type:text"`
	ProposedPrice float64
	DeliveryTime  int            // days
	Status        ProposalStatus `gorm:"type:varchar(20);default:'pending';index"`
}

// Active reports whether the proposal still competes for the project.
func (p *Proposal) Active() bool {
	return p.Status == ProposalStatusPending || p.Status == ProposalStatusPaymentPending
}
