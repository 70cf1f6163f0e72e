package handlers

import (
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	*BaseHandler
	proposalService *services.ProposalService
}

func NewProposalHandler(base *BaseHandler, proposalService *services.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		BaseHandler:     base,
		proposalService: proposalService,
	}
}

func (h *ProposalHandler) RegisterRoutes(r *gin.RouterGroup) {
	freelancer := r.Group("/proposals")
	freelancer.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleFreelancer))
	{
		freelancer.POST("", h.CreateProposal)
		freelancer.GET("/mine", h.ListMyProposals)
	}

	shared := r.Group("/proposals")
	shared.Use(middleware.AuthMiddleware())
	{
		shared.GET("/:proposalId", h.GetProposal)
	}

	client := r.Group("/proposals")
	client.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		client.POST("/:proposalId/reject", h.RejectProposal)
	}
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, proposal)
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	proposal, err := h.proposalService.GetByID(c.Param("proposalId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, proposal)
}

func (h *ProposalHandler) ListMyProposals(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	proposals, err := h.proposalService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, proposals)
}

func (h *ProposalHandler) RejectProposal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.proposalService.Reject(c.Param("proposalId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}
