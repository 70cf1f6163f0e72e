package models

type Payment struct {
	BaseModel
	OrderID            string `gorm:"not null;index"`
	RazorpayOrderID    string `gorm:"uniqueIndex;not null"`
	RazorpayTransferID *string
	Amount             float64
	Status             PaymentStatus `gorm:"type:varchar(20);default:'pending';index"`
}
