package reconcile

// EventPaymentCaptured is the gateway's confirmation that a payment
// completed. All other event types are acknowledged and ignored.
const EventPaymentCaptured = "payment.captured"

// Event is the Razorpay webhook envelope, reduced to the fields the
// reconciler consumes.
type Event struct {
	Event   string       `json:"event"`
	Payload EventPayload `json:"payload"`
}

type EventPayload struct {
	Payment PaymentWrapper `json:"payment"`
}

type PaymentWrapper struct {
	Entity PaymentEntity `json:"entity"`
}

type PaymentEntity struct {
	ID       string       `json:"id"`
	Amount   int64        `json:"amount"`
	Currency string       `json:"currency"`
	OrderID  string       `json:"order_id"`
	Notes    PaymentNotes `json:"notes"`
}

// PaymentNotes is the metadata round-trip from order creation: the gateway
// echoes the order's notes back unmodified, which is the only way the event
// identifies the paying user and the purchased plan.
type PaymentNotes struct {
	UserID string `json:"userId"`
	PlanID string `json:"planId"`
}
