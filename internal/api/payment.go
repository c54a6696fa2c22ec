package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"character-chat/backend/internal/service"
	apperrors "character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/logger"
)

// PaymentHandler starts hosted checkout sessions for the subscription.
type PaymentHandler struct {
	checkout service.CheckoutCreator
}

func NewPaymentHandler(checkout service.CheckoutCreator) *PaymentHandler {
	return &PaymentHandler{checkout: checkout}
}

// CreateCheckoutSession handles POST /api/create-checkout-session. The body
// is optional and ignored beyond a warn log when it fails to parse; every
// parameter of the subscription is fixed server-side.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.FromContext(c).Warn("No JSON body provided, using defaults")
	}

	session, err := h.checkout.CreateCheckout(requestOrigin(c))
	if err != nil {
		appErr := apperrors.FromError(err)
		logger.FromContext(c).Error("Error creating checkout session",
			"error_code", appErr.Code,
			"details", appErr.Details,
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create checkout session",
			"details": appErr.Details,
		})
		return
	}

	c.JSON(http.StatusOK, session)
}

// requestOrigin rebuilds the requesting site's scheme://host for the
// checkout return URLs, honoring the Origin header when the browser sends
// one.
func requestOrigin(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return origin
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
