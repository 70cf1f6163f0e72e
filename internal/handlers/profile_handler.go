package handlers

import (
	"strconv"

	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService *services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	{
		profiles.GET("/freelancers", h.ListFreelancers)
		profiles.GET("/:userId", h.GetProfile)
	}

	me := r.Group("/profiles")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/me/view", h.GetMyProfile)
		me.PUT("/me", h.UpdateMyProfile)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetByUserID(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, profile)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetByUserID(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.Update(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, profile)
}

func (h *ProfileHandler) ListFreelancers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	// The public directory only ever shows verified students.
	profiles, err := h.profileService.ListFreelancers(repositories.FreelancerCriteria{
		CollegeName:  c.Query("college"),
		VerifiedOnly: true,
		Limit:        limit,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, profiles)
}
