package checkoutControllers

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"

	"github.com/kroklik/digitalstore-api/config"
)

// SessionGetter fetches a checkout session from the gateway by id. The
// success handler takes it as a parameter so tests can stub settlement.
type SessionGetter func(id string) (*stripe.CheckoutSession, error)

// StripeSessionGetter is the production SessionGetter.
func StripeSessionGetter(id string) (*stripe.CheckoutSession, error) {
	return session.Get(id, nil)
}

// createSession opens a hosted checkout session carrying one aggregated line
// item for the whole cart, priced in minor units.
func createSession(cfg config.StripeConfig, orderID uint, total decimal.Decimal) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(cfg.Currency),
					UnitAmount: stripe.Int64(total.Shift(2).IntPart()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("DigitalStore order"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(strconv.FormatUint(uint64(orderID), 10)),
		SuccessURL:        stripe.String(cfg.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(cfg.CancelURL),
	}

	// resubmitting an unchanged cart yields the same session instead of a second one
	params.SetIdempotencyKey(fmt.Sprintf("order-%d-%s", orderID, total.String()))

	return session.New(params)
}
