package handlers

import (
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	*BaseHandler
	recommendationService *services.RecommendationService
}

func NewRecommendationHandler(base *BaseHandler, recommendationService *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		BaseHandler:           base,
		recommendationService: recommendationService,
	}
}

func (h *RecommendationHandler) RegisterRoutes(r *gin.RouterGroup) {
	client := r.Group("/recommendations")
	client.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		client.GET("/projects/:projectId/freelancers", h.RecommendFreelancers)
	}

	freelancer := r.Group("/recommendations")
	freelancer.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleFreelancer))
	{
		freelancer.GET("/projects", h.RecommendProjects)
	}
}

func (h *RecommendationHandler) RecommendFreelancers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	recommendations, err := h.recommendationService.RecommendFreelancers(c.Param("projectId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, recommendations)
}

func (h *RecommendationHandler) RecommendProjects(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	recommendations, err := h.recommendationService.RecommendProjects(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, recommendations)
}
