package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"greenroots/internal/infra"

	"github.com/rs/zerolog/log"
)

// OrderConfirmationPayload is the job envelope for confirmation mail sent
// after an order item is placed.
type OrderConfirmationPayload struct {
	ToEmail    string `json:"to_email"`
	Firstname  string `json:"firstname"`
	OrderID    string `json:"order_id"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	TotalPrice string `json:"total_price"`
}

// EmailWorker sends order-confirmation mail dequeued from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload OrderConfirmationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	subject := "Your Greenroots order"
	body := fmt.Sprintf(
		"Hello %s,\n\nThank you for your order %s.\n\n%d × %s will be planted for you.\nOrder total: %s €.\n\nThe Greenroots team",
		payload.Firstname, payload.OrderID, payload.Quantity, payload.ItemName, payload.TotalPrice)

	if err := w.mailer.Send(payload.ToEmail, subject, body); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("order_id", payload.OrderID).Msg("email_worker: confirmation sent")
}
