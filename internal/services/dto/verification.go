package dto

type SubmitVerificationRequest struct {
	CollegeEmail    string  `json:"college_email" validate:"required,email"`
	CollegeName     string  `json:"college_name" validate:"required,min=2,max=200"`
	Course          *string `json:"course" validate:"omitempty,max=200"`
	Department      *string `json:"department" validate:"omitempty,max=200"`
	StudentIDUpload *string `json:"student_id_upload" validate:"omitempty,uuid"`
	GovtIDUpload    *string `json:"govt_id_upload" validate:"omitempty,uuid"`
}

type ReviewVerificationRequest struct {
	Decision   string  `json:"decision" validate:"required,is-verification-decision"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=2000"`
}

type VerificationResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	CollegeEmail string  `json:"college_email"`
	CollegeName  string  `json:"college_name"`
	Course       *string `json:"course,omitempty"`
	Department   *string `json:"department,omitempty"`
	Status       string  `json:"status"`
	AdminNotes   *string `json:"admin_notes,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
