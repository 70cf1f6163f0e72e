package dto

type CreateGigRequest struct {
	Title        string   `json:"title" validate:"required,min=5,max=150"`
	Description  string   `json:"description" validate:"required,min=20,max=5000"`
	Category     string   `json:"category" validate:"required,max=100"`
	Subcategory  *string  `json:"subcategory" validate:"omitempty,max=100"`
	Tags         []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=50"`
	BasePrice    float64  `json:"base_price" validate:"required,gt=0"`
	DeliveryTime int      `json:"delivery_time" validate:"required,min=1,max=365"`
	ImageIDs     []string `json:"image_ids" validate:"omitempty,max=5,dive,uuid"`
}

type UpdateGigRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=5,max=150"`
	Description  *string  `json:"description" validate:"omitempty,min=20,max=5000"`
	Category     *string  `json:"category" validate:"omitempty,max=100"`
	Tags         []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=50"`
	BasePrice    *float64 `json:"base_price" validate:"omitempty,gt=0"`
	DeliveryTime *int     `json:"delivery_time" validate:"omitempty,min=1,max=365"`
	IsActive     *bool    `json:"is_active"`
}

type GigResponse struct {
	ID            string   `json:"id"`
	FreelancerID  string   `json:"freelancer_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	BasePrice     float64  `json:"base_price"`
	DeliveryTime  int      `json:"delivery_time"`
	IsActive      bool     `json:"is_active"`
	TotalOrders   int      `json:"total_orders"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

type GigFilterRequest struct {
	Category string  `form:"category"`
	MaxPrice float64 `form:"max_price"`
	Search   string  `form:"search"`
	Limit    int     `form:"limit"`
	Offset   int     `form:"offset"`
}
