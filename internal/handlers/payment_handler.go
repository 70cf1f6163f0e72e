package handlers

import (
	"errors"
	"io"
	"net/http"

	"collegeskills_backend/internal/config"
	"collegeskills_backend/internal/logger"
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/internal/services/razorpay"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService *services.PaymentService
	webhookSecret  string
}

func NewPaymentHandler(base *BaseHandler, paymentService *services.PaymentService, cfg config.RazorpayConfig) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
		webhookSecret:  cfg.WebhookSecret,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	client := r.Group("/payments")
	client.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		client.POST("/orders", h.CreatePaymentOrder)
		client.POST("/orders/:orderId/release", h.ReleaseEscrow)
	}

	freelancer := r.Group("/payments")
	freelancer.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleFreelancer))
	{
		freelancer.POST("/payout-account", h.ConnectPayoutAccount)
	}

	shared := r.Group("/payments")
	shared.Use(middleware.AuthMiddleware())
	{
		shared.GET("/orders/:orderId", h.GetPayment)
	}
}

// RegisterWebhookRoutes mounts the gateway callback outside the
// authenticated API group; Razorpay authenticates with a signature, not
// a bearer token.
func (h *PaymentHandler) RegisterWebhookRoutes(r *gin.Engine) {
	r.POST("/razorpay", h.Webhook)
}

func (h *PaymentHandler) CreatePaymentOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.CreateRazorpayOrder(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *PaymentHandler) ReleaseEscrow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.paymentService.ReleaseEscrow(c.Request.Context(), userID, c.Param("orderId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *PaymentHandler) ConnectPayoutAccount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ConnectPayoutAccountRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.paymentService.ConnectPayoutAccount(c.Request.Context(), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByOrderID(c.Param("orderId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, payment)
}

// Webhook verifies the gateway signature over the raw body before
// touching any state. A missing or wrong signature is a 401, a
// malformed one a 400. Once the signature checks out we always answer
// 200 so the gateway does not retry forever; processing failures are
// logged and recovered via webhook replay from the dashboard.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	signature := c.GetHeader("x-razorpay-signature")
	if err := razorpay.VerifyWebhookSignature(body, signature, h.webhookSecret); err != nil {
		if errors.Is(err, razorpay.ErrMalformedSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed signature"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	if err := h.paymentService.ProcessWebhookEvent(body); err != nil {
		logger.CtxWithError(c.Request.Context(), "webhook processing failed", err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
