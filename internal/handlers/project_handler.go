package handlers

import (
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	*BaseHandler
	projectService  *services.ProjectService
	proposalService *services.ProposalService
}

func NewProjectHandler(
	base *BaseHandler,
	projectService *services.ProjectService,
	proposalService *services.ProposalService,
) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:     base,
		projectService:  projectService,
		proposalService: proposalService,
	}
}

func (h *ProjectHandler) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects")
	{
		projects.GET("", h.ListProjects)
		projects.GET("/:projectId", h.GetProject)
	}

	client := r.Group("/projects")
	client.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		client.POST("", h.CreateProject)
		client.GET("/mine/list", h.ListMyProjects)
		client.PUT("/:projectId", h.UpdateProject)
		client.POST("/:projectId/cancel", h.CancelProject)
		client.GET("/:projectId/proposals", h.ListProjectProposals)
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, project)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetByID(c.Param("projectId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, project)
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var filter dto.ProjectFilterRequest
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	projects, err := h.projectService.List(&filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, projects)
}

func (h *ProjectHandler) ListMyProjects(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, projects)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Param("projectId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, project)
}

func (h *ProjectHandler) CancelProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.Cancel(c.Param("projectId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ProjectHandler) ListProjectProposals(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	proposals, err := h.proposalService.ListByProject(c.Param("projectId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, proposals)
}
