package dto

type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=150"`
	Description string   `json:"description" validate:"required,min=20,max=10000"`
	Category    string   `json:"category" validate:"required,max=100"`
	BudgetMin   float64  `json:"budget_min" validate:"required,gt=0"`
	BudgetMax   float64  `json:"budget_max" validate:"required,gtefield=BudgetMin"`
	Deadline    *string  `json:"deadline" validate:"omitempty"`
	Skills      []string `json:"skills" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type UpdateProjectRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=5,max=150"`
	Description *string  `json:"description" validate:"omitempty,min=20,max=10000"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	BudgetMin   *float64 `json:"budget_min" validate:"omitempty,gt=0"`
	BudgetMax   *float64 `json:"budget_max" validate:"omitempty,gt=0"`
	Skills      []string `json:"skills" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type ProjectResponse struct {
	ID                   string   `json:"id"`
	ClientID             string   `json:"client_id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	BudgetMin            float64  `json:"budget_min"`
	BudgetMax            float64  `json:"budget_max"`
	Deadline             *string  `json:"deadline,omitempty"`
	Skills               []string `json:"skills,omitempty"`
	Status               string   `json:"status"`
	SelectedFreelancerID *string  `json:"selected_freelancer_id,omitempty"`
	ProposalCount        int      `json:"proposal_count"`
	CreatedAt            string   `json:"created_at"`
}

type ProjectFilterRequest struct {
	Status      string  `form:"status" validate:"omitempty,is-project-status"`
	Category    string  `form:"category"`
	MaxBudget   float64 `form:"max_budget"`
	SkillSearch string  `form:"skill"`
	Limit       int     `form:"limit"`
	Offset      int     `form:"offset"`
}
