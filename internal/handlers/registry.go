package handlers

// AppHandlers holds every HTTP handler in the application.
type AppHandlers struct {
	AuthHandler           *AuthHandler
	ProfileHandler        *ProfileHandler
	GigHandler            *GigHandler
	ProjectHandler        *ProjectHandler
	ProposalHandler       *ProposalHandler
	PaymentHandler        *PaymentHandler
	OrderHandler          *OrderHandler
	ChatHandler           *ChatHandler
	NotificationHandler   *NotificationHandler
	RecommendationHandler *RecommendationHandler
	VerificationHandler   *VerificationHandler
	ReviewHandler         *ReviewHandler
	UploadHandler         *UploadHandler
}
