package services

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService           *AuthService
	ProfileService        *ProfileService
	GigService            *GigService
	ProjectService        *ProjectService
	ProposalService       *ProposalService
	PaymentService        *PaymentService
	OrderService          *OrderService
	ChatService           *ChatService
	NotificationService   *NotificationService
	ActivityService       *ActivityService
	RecommendationService *RecommendationService
	VerificationService   *VerificationService
	ReviewService         *ReviewService
	CategoryService       *CategoryService
	UploadService         *UploadService
}
