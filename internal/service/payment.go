package service

import (
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"

	apperrors "character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/logger"
	"character-chat/backend/shared/observability"
)

const (
	subscriptionName        = "c.ai+ Monthly Subscription"
	subscriptionDescription = "Access to premium features and unlimited credits"
	subscriptionAmountCents = 100
	subscriptionType        = "cai_plus_monthly"
)

// CheckoutSession is what the browser needs to hand off to the payment page.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutCreator starts a hosted checkout for the monthly subscription.
// origin is the requesting site's scheme://host, used to build the return
// URLs.
type CheckoutCreator interface {
	CreateCheckout(origin string) (*CheckoutSession, error)
}

// StripeCheckout creates subscription checkout sessions via Stripe.
type StripeCheckout struct {
	log *logger.Logger
}

// NewStripeCheckout sets the package-level Stripe key and returns the
// creator. An empty key is allowed; Stripe rejects the calls and the handler
// surfaces the failure.
func NewStripeCheckout(secretKey string, log *logger.Logger) *StripeCheckout {
	stripe.Key = secretKey
	return &StripeCheckout{log: log}
}

func (s *StripeCheckout) CreateCheckout(origin string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(subscriptionName),
						Description: stripe.String(subscriptionDescription),
					},
					UnitAmount: stripe.Int64(subscriptionAmountCents),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:                     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:               stripe.String(origin + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:                stripe.String(origin + "/payment/canceled"),
		AllowPromotionCodes:      stripe.Bool(true),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
	}
	params.AddMetadata("subscription_type", subscriptionType)

	result, err := session.New(params)
	if err != nil {
		observability.CheckoutSessions.WithLabelValues("error").Inc()
		s.log.Error("Failed to create checkout session", "error", err.Error())
		return nil, apperrors.NewInternalServerError("CHECKOUT_FAILED", "Failed to create checkout session").
			WithDetails(err.Error())
	}

	observability.CheckoutSessions.WithLabelValues("created").Inc()
	s.log.Info("Checkout session created", "checkout_session_id", result.ID)
	return &CheckoutSession{SessionID: result.ID, URL: result.URL}, nil
}
