package handlers

import (
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GigHandler struct {
	*BaseHandler
	gigService *services.GigService
}

func NewGigHandler(base *BaseHandler, gigService *services.GigService) *GigHandler {
	return &GigHandler{
		BaseHandler: base,
		gigService:  gigService,
	}
}

func (h *GigHandler) RegisterRoutes(r *gin.RouterGroup) {
	gigs := r.Group("/gigs")
	{
		gigs.GET("", h.ListGigs)
		gigs.GET("/:gigId", h.GetGig)
	}

	mine := r.Group("/gigs")
	mine.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleFreelancer))
	{
		mine.POST("", h.CreateGig)
		mine.GET("/mine/list", h.ListMyGigs)
		mine.PUT("/:gigId", h.UpdateGig)
		mine.DELETE("/:gigId", h.DeleteGig)
	}
}

func (h *GigHandler) CreateGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGigRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	gig, err := h.gigService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gig)
}

func (h *GigHandler) GetGig(c *gin.Context) {
	gig, err := h.gigService.GetByID(c.Param("gigId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gig)
}

func (h *GigHandler) ListGigs(c *gin.Context) {
	var filter dto.GigFilterRequest
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	gigs, err := h.gigService.List(&filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gigs)
}

func (h *GigHandler) ListMyGigs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gigs, err := h.gigService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gigs)
}

func (h *GigHandler) UpdateGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGigRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	gig, err := h.gigService.Update(c.Param("gigId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gig)
}

func (h *GigHandler) DeleteGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.gigService.Delete(c.Param("gigId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}
