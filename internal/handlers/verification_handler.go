package handlers

import (
	"strconv"

	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService *services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
	}
}

func (h *VerificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	verification := r.Group("/verification")
	verification.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleFreelancer))
	{
		verification.POST("", h.Submit)
		verification.GET("/mine", h.GetMine)
	}

	admin := r.Group("/admin/verification")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPending)
		admin.POST("/:requestId/review", h.Review)
	}
}

func (h *VerificationHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.verificationService.Submit(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *VerificationHandler) GetMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.GetMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *VerificationHandler) ListPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	requests, err := h.verificationService.ListPending(limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, requests)
}

func (h *VerificationHandler) Review(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.verificationService.Review(c.Param("requestId"), adminID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}
