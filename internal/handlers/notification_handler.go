package handlers

import (
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService *services.NotificationService
	activityService     *services.ActivityService
}

func NewNotificationHandler(
	base *BaseHandler,
	notificationService *services.NotificationService,
	activityService *services.ActivityService,
) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
		activityService:     activityService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PUT("/:notificationId/read", h.MarkAsRead)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.DELETE("/:notificationId", h.DeleteNotification)
	}

	activity := r.Group("/activity")
	activity.Use(middleware.AuthMiddleware())
	{
		activity.GET("/mine", h.ListMyActivity)
	}

	admin := r.Group("/admin/activity")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.ListAllActivity)
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var filter dto.NotificationFilterRequest
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	notifications, err := h.notificationService.List(userID, &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(c.Param("notificationId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.Delete(c.Param("notificationId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *NotificationHandler) ListMyActivity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	entries, err := h.activityService.List(repositories.ActivityCriteria{UserID: userID})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, entries)
}

func (h *NotificationHandler) ListAllActivity(c *gin.Context) {
	entries, err := h.activityService.List(repositories.ActivityCriteria{
		UserID: c.Query("user_id"),
		Action: c.Query("action"),
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, entries)
}
