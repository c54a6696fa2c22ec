package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-chat/backend/internal/service"
	apperrors "character-chat/backend/pkg/errors"
)

type fakeCheckout struct {
	origin string
	fail   bool
}

func (f *fakeCheckout) CreateCheckout(origin string) (*service.CheckoutSession, error) {
	f.origin = origin
	if f.fail {
		return nil, apperrors.NewInternalServerError("CHECKOUT_FAILED", "Failed to create checkout session").
			WithDetails("card network unreachable")
	}
	return &service.CheckoutSession{SessionID: "cs_test_123", URL: "https://checkout.example/cs_test_123"}, nil
}

func paymentRouter(checkout service.CheckoutCreator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/create-checkout-session", NewPaymentHandler(checkout).CreateCheckoutSession)
	return r
}

func TestCreateCheckoutSessionReturnsIDAndURL(t *testing.T) {
	fake := &fakeCheckout{}
	r := paymentRouter(fake)

	w := postJSON(r, "/api/create-checkout-session", `{"priceId": "price_1HExample"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sessionId": "cs_test_123", "url": "https://checkout.example/cs_test_123"}`, w.Body.String())
}

func TestCreateCheckoutSessionToleratesMalformedBody(t *testing.T) {
	fake := &fakeCheckout{}
	r := paymentRouter(fake)

	w := postJSON(r, "/api/create-checkout-session", `this is not json`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCheckoutSessionUsesRequestOrigin(t *testing.T) {
	fake := &fakeCheckout{}
	r := paymentRouter(fake)

	req, _ := http.NewRequest(http.MethodPost, "/api/create-checkout-session", nil)
	req.Header.Set("Origin", "https://chat.example.com")
	w := performRequest(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://chat.example.com", fake.origin)
}

func TestCreateCheckoutSessionFailure(t *testing.T) {
	r := paymentRouter(&fakeCheckout{fail: true})

	w := postJSON(r, "/api/create-checkout-session", `{}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{
		"error": "Failed to create checkout session",
		"details": "card network unreachable"
	}`, w.Body.String())
}
