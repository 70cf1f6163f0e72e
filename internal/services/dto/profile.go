package dto

type UpdateProfileRequest struct {
	FirstName      *string  `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName       *string  `json:"last_name" validate:"omitempty,min=1,max=50"`
	Bio            *string  `json:"bio" validate:"omitempty,max=2000"`
	CollegeName    *string  `json:"college_name" validate:"omitempty,max=200"`
	CollegeEmail   *string  `json:"college_email" validate:"omitempty,email,max=254"`
	GraduationYear *int     `json:"graduation_year" validate:"omitempty,min=1990,max=2100"`
	Skills         []string `json:"skills" validate:"omitempty,max=30,dive,min=1,max=50"`
	Company        *string  `json:"company" validate:"omitempty,max=200"`
}

type ProfileResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	UserType        string   `json:"user_type"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Bio             *string  `json:"bio,omitempty"`
	CollegeName     *string  `json:"college_name,omitempty"`
	GraduationYear  *int     `json:"graduation_year,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	IsVerified      bool     `json:"is_verified"`
	HasPayoutAccount bool    `json:"has_payout_account"`
	Company         *string  `json:"company,omitempty"`
	AverageRating   *float64 `json:"average_rating,omitempty"`
	TotalReviews    int      `json:"total_reviews"`
	CreatedAt       string   `json:"created_at"`
}
