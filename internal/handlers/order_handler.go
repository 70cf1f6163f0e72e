package handlers

import (
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	*BaseHandler
	orderService *services.OrderService
}

func NewOrderHandler(base *BaseHandler, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  base,
		orderService: orderService,
	}
}

func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:orderId", h.GetOrder)
	}

	freelancer := r.Group("/orders")
	freelancer.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleFreelancer))
	{
		freelancer.POST("/:orderId/deliver", h.DeliverOrder)
	}

	client := r.Group("/orders")
	client.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		client.POST("/:orderId/dispute", h.DisputeOrder)
	}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForUser(userID, h.UserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Param("orderId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, order)
}

func (h *OrderHandler) DeliverOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DeliverOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.orderService.Deliver(c.Param("orderId"), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *OrderHandler) DisputeOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.orderService.Dispute(c.Param("orderId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}
