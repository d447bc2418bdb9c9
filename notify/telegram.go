package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// TelegramSender sends a message through the Telegram Bot API. *tgbotapi.BotAPI satisfies it.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier delivers notifications as Telegram chat messages.
//
// Recipients are mapped to chat IDs; recipients without a chat go to the fallback chat
// if one is configured with WithFallbackChatID, otherwise they are logged and dropped.
// A non-empty subject becomes the first line of the message text.
type TelegramNotifier struct {
	sender  TelegramSender
	chatIDs map[string]int64
	config  config
}

// NewTelegramNotifier creates a TelegramNotifier. The chatIDs map is copied.
func NewTelegramNotifier(sender TelegramSender, chatIDs map[string]int64, options ...Option) (*TelegramNotifier, error) {
	if sender == nil {
		return nil, ErrNilSender
	}

	c, err := newConfig(options)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]int64, len(chatIDs))
	for recipient, chatID := range chatIDs {
		if chatID == 0 {
			return nil, ErrInvalidChatID
		}

		ids[recipient] = chatID
	}

	return &TelegramNotifier{sender: sender, chatIDs: ids, config: c}, nil
}

// Notify sends the notification to the recipient's chat. A nil *TelegramNotifier drops it.
func (n *TelegramNotifier) Notify(ctx context.Context, recipient, subject, message string) {
	if n == nil {
		return
	}

	chatID, ok := n.chatIDFor(recipient)
	if !ok {
		n.config.logWarn(ctx, LogMsgUnknownRecipient, LogAttrChannel, ChannelTelegram, LogAttrRecipient, recipient)
		return
	}

	if _, err := n.sender.Send(tgbotapi.NewMessage(chatID, telegramText(subject, message))); err != nil {
		n.config.logError(ctx, LogMsgNotificationFailed,
			LogAttrChannel, ChannelTelegram,
			LogAttrRecipient, recipient,
			LogAttrError, err.Error(),
		)
	}
}

func (n *TelegramNotifier) chatIDFor(recipient string) (int64, bool) {
	if chatID, ok := n.chatIDs[recipient]; ok {
		return chatID, true
	}

	if n.config.fallbackChatID != 0 {
		return n.config.fallbackChatID, true
	}

	return 0, false
}

func telegramText(subject, message string) string {
	if subject == "" {
		return message
	}

	return subject + "\n" + message
}

var _ lending.Notifier = (*TelegramNotifier)(nil)
