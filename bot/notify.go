package bot

import (
	"fmt"

	"foodcart/config"
	"foodcart/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Notifier pushes new-order alerts to the admin chat. Optional: main only
// constructs one when NOTIFY_TOKEN is set.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(cfg config.TelegramConfig) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(cfg.NotifyToken)
	if err != nil {
		return nil, fmt.Errorf("notify bot: %w", err)
	}
	return &Notifier{api: api, chatID: cfg.NotifyChatID}, nil
}

// NotifyNewOrder sends a short order card to the admin chat. Failures are
// logged, not propagated: notification must never fail an order.
func (n *Notifier) NotifyNewOrder(order *models.Order) {
	text := fmt.Sprintf(
		"New order #%d\n%s %s, %s\n%s\nItems:\n",
		order.ID, order.Firstname, order.Lastname, order.Phonenumber, order.Address,
	)
	for _, line := range order.Lines {
		text += fmt.Sprintf("  %s x%d\n", line.ProductName, line.Quantity)
	}
	text += fmt.Sprintf("Total: %d\nPayment: %s", order.CartTotal, models.PaymentLabel(order.PaymentMethod))
	if order.Comment != "" {
		text += "\nComment: " + order.Comment
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		log.Warn().Err(err).Int64("order_id", order.ID).Msg("order notification failed")
	}
}
