package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

func newWebhookService(gw *stubGateway, mailer *fakeMailer) *WebhookService {
	return NewWebhookService(gw, mailer, testConfig(), zap.NewNop())
}

func makeEvent(t *testing.T, id, eventType string, payload interface{}) *stripe.Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &stripe.Event{
		ID:   id,
		Type: eventType,
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestHourlyCheckoutCompletedComputesRate(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	svc.Handle(makeEvent(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id":           "cs_1",
		"amount_total": 9000,
		"customer_details": map[string]interface{}{
			"email": "client@example.fr",
		},
		"metadata": map[string]string{
			"type":        "hourly",
			"serviceName": "Gestion Administrative",
			"hours":       "3",
		},
	}))

	require.Len(t, mailer.hourlyConfirmations, 1)
	confirmation := mailer.hourlyConfirmations[0]
	assert.Equal(t, "client@example.fr", confirmation.To)
	assert.Equal(t, "Gestion Administrative", confirmation.ServiceName)
	assert.Equal(t, int64(3), confirmation.Hours)
	assert.InDelta(t, 30.00, confirmation.HourlyRate, 0.001)
	assert.InDelta(t, 90.00, confirmation.Total, 0.001)
	assert.Equal(t, "http://localhost:3000/api/invoice/cs_1", confirmation.InvoiceURL)

	require.Len(t, mailer.operatorHourlyPayments, 1)
	assert.Equal(t, 1, mailer.clientSendCount(), "exactly one payer notification")
	assert.Equal(t, 1, mailer.operatorSendCount(), "exactly one operator notification")
}

func TestSubscriptionCheckoutCompleted(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	svc.Handle(makeEvent(t, "evt_2", "checkout.session.completed", map[string]interface{}{
		"id":             "cs_2",
		"amount_total":   2990,
		"customer_email": "client@example.fr",
		"metadata": map[string]string{
			"planId":   "essential",
			"planName": "Pack Starter",
		},
	}))

	require.Len(t, mailer.subscriptionConfirmations, 1)
	confirmation := mailer.subscriptionConfirmations[0]
	assert.Equal(t, "client@example.fr", confirmation.To)
	assert.Equal(t, "Pack Starter", confirmation.PlanName)
	assert.Equal(t, int64(2990), confirmation.AmountCents)
	assert.Equal(t, "http://localhost:3000/api/invoice/cs_2", confirmation.InvoiceURL)

	require.Len(t, mailer.operatorNewSubscriptions, 1)
}

func TestCheckoutCompletedWithoutEmailSkipsPayerMail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	svc.Handle(makeEvent(t, "evt_3", "checkout.session.completed", map[string]interface{}{
		"id":           "cs_3",
		"amount_total": 2990,
		"metadata":     map[string]string{"planName": "Pack Starter"},
	}))

	assert.Equal(t, 0, mailer.clientSendCount())
	assert.Equal(t, 1, mailer.operatorSendCount())
}

func TestInvoicePaidLogsOnly(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	svc.Handle(makeEvent(t, "evt_4", "invoice.paid", map[string]interface{}{
		"id": "in_1",
	}))

	assert.Equal(t, 0, mailer.clientSendCount())
	assert.Equal(t, 0, mailer.operatorSendCount())
}

func TestInvoicePaymentFailed(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	svc.Handle(makeEvent(t, "evt_5", "invoice.payment_failed", map[string]interface{}{
		"id":             "in_2",
		"customer_email": "client@example.fr",
		"lines": map[string]interface{}{
			"data": []map[string]interface{}{{"description": "Pack Pro"}},
		},
	}))

	assert.Equal(t, []string{"client@example.fr"}, mailer.paymentFailures)
	assert.Equal(t, []string{"client@example.fr"}, mailer.operatorPaymentFailures)
}

func TestInvoicePaymentFailedWithoutEmailAlertsOperatorOnly(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	svc.Handle(makeEvent(t, "evt_6", "invoice.payment_failed", map[string]interface{}{
		"id": "in_3",
	}))

	assert.Empty(t, mailer.paymentFailures)
	assert.Len(t, mailer.operatorPaymentFailures, 1)
}

func TestSubscriptionDeletedResolvesCustomerEmail(t *testing.T) {
	mailer := &fakeMailer{}
	gw := &stubGateway{customer: &stripe.Customer{ID: "cus_1", Email: "client@example.fr"}}
	svc := newWebhookService(gw, mailer)

	svc.Handle(makeEvent(t, "evt_7", "customer.subscription.deleted", map[string]interface{}{
		"id":       "sub_1",
		"customer": "cus_1",
		"items": map[string]interface{}{
			"data": []map[string]interface{}{
				{"price": map[string]interface{}{"nickname": "Pack Pro"}},
			},
		},
	}))

	assert.Equal(t, []string{"client@example.fr"}, mailer.cancellations)
	assert.Equal(t, []string{"client@example.fr"}, mailer.operatorCancellations)
}

func TestSubscriptionUpdatedScheduledCancellation(t *testing.T) {
	mailer := &fakeMailer{}
	gw := &stubGateway{customer: &stripe.Customer{ID: "cus_1", Email: "client@example.fr"}}
	svc := newWebhookService(gw, mailer)

	svc.Handle(makeEvent(t, "evt_8", "customer.subscription.updated", map[string]interface{}{
		"id":                   "sub_1",
		"customer":             "cus_1",
		"cancel_at_period_end": true,
	}))

	assert.Equal(t, []string{"client@example.fr"}, mailer.scheduledCancellations)
	assert.Equal(t, 0, mailer.clientSendCount(), "no payer notification for a scheduled cancellation")
	assert.Equal(t, 1, mailer.operatorSendCount())
}

func TestSubscriptionUpdatedWithoutCancellationIsNoop(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	svc.Handle(makeEvent(t, "evt_9", "customer.subscription.updated", map[string]interface{}{
		"id":                   "sub_1",
		"customer":             "cus_1",
		"cancel_at_period_end": false,
	}))

	assert.Equal(t, 0, mailer.clientSendCount())
	assert.Equal(t, 0, mailer.operatorSendCount())
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	svc.Handle(makeEvent(t, "evt_10", "payment_intent.created", map[string]interface{}{
		"id": "pi_1",
	}))

	assert.Equal(t, 0, mailer.clientSendCount())
	assert.Equal(t, 0, mailer.operatorSendCount())
}

func TestDuplicateDeliverySendsNothing(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	event := makeEvent(t, "evt_11", "checkout.session.completed", map[string]interface{}{
		"id":             "cs_4",
		"amount_total":   2990,
		"customer_email": "client@example.fr",
		"metadata":       map[string]string{"planName": "Pack Starter"},
	})

	svc.Handle(event)
	svc.Handle(event)

	assert.Equal(t, 1, mailer.clientSendCount(), "re-delivery must not duplicate the payer mail")
	assert.Equal(t, 1, mailer.operatorSendCount(), "re-delivery must not duplicate the operator mail")
}

func TestSubscriptionEventsTolerateVanishedCustomer(t *testing.T) {
	for _, eventType := range []string{"customer.subscription.deleted", "customer.subscription.updated"} {
		mailer := &fakeMailer{}
		// stub lookup resolves cus_gone to nothing
		svc := newWebhookService(&stubGateway{}, mailer)

		assert.NotPanics(t, func() {
			svc.Handle(makeEvent(t, "evt_"+eventType, eventType, map[string]interface{}{
				"id":                   "sub_gone",
				"customer":             "cus_gone",
				"cancel_at_period_end": true,
			}))
		}, eventType)

		assert.Zero(t, mailer.clientSendCount(), eventType)
		assert.Zero(t, mailer.operatorSendCount(), eventType)
	}
}

func TestMalformedPayloadDoesNotPanic(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newWebhookService(&stubGateway{}, mailer)

	event := &stripe.Event{
		ID:   "evt_12",
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: json.RawMessage(`{"amount_total": "not a number"}`)},
	}

	assert.NotPanics(t, func() { svc.Handle(event) })
	assert.Equal(t, 0, mailer.clientSendCount())
}
