package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/cart"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/checkout"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/gateway"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/money"
)

// startCheckoutRequest carries the purchasable items and the web layer's
// redirect base URL. Validation of both happens in the checkout service so
// the error taxonomy stays in one place.
type startCheckoutRequest struct {
	Items   []cart.Item `json:"items"`
	BaseURL string      `json:"base_url"`
}

type confirmApprovalRequest struct {
	PayerID string `json:"payer_id" binding:"required"`
}

// StartCheckout handles POST /api/v1/checkout
func (h *Handlers) StartCheckout(c *gin.Context) {
	var req startCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to bind checkout request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.checkoutService.StartCheckout(c.Request.Context(), req.Items, req.BaseURL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ConfirmApproval handles POST /api/v1/checkout/:id/approval
func (h *Handlers) ConfirmApproval(c *gin.Context) {
	sessionID := c.Param("id")

	var req confirmApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payer_id is required"})
		return
	}

	result, err := h.checkoutService.ConfirmApproval(c.Request.Context(), sessionID, req.PayerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CancelCheckout handles POST /api/v1/checkout/:id/cancel
func (h *Handlers) CancelCheckout(c *gin.Context) {
	sessionID := c.Param("id")

	session, err := h.checkoutService.CancelCheckout(c.Request.Context(), sessionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetSession handles GET /api/v1/checkout/:id
func (h *Handlers) GetSession(c *gin.Context) {
	sessionID := c.Param("id")

	session, err := h.checkoutService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// handleError maps the checkout error taxonomy onto HTTP. Reason codes
// travel in the body so the web layer can decide user messaging.
func (h *Handlers) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "empty_cart"})
	case errors.Is(err, money.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "invalid_amount"})
	case errors.Is(err, gateway.ErrInvalidBaseURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "invalid_base_url"})
	case errors.Is(err, checkout.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "reason": "session_not_found"})
	case errors.Is(err, checkout.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "illegal_transition"})
	default:
		var gwErr *gateway.Error
		if errors.As(err, &gwErr) {
			status := http.StatusBadGateway
			switch gwErr.Reason {
			case gateway.ReasonRejected:
				status = http.StatusUnprocessableEntity
			case gateway.ReasonUnavailable:
				status = http.StatusServiceUnavailable
			}
			c.JSON(status, gin.H{"error": gwErr.Error(), "reason": gwErr.Reason})
			return
		}

		h.logger.WithFields(logrus.Fields{"error": err.Error()}).Error("Unhandled checkout error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
