package bot

import (
	"context"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender is the subset of the Telegram client the bot uses.
// *tbot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *tbot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *tbot.SendChatActionParams) (bool, error)
}

// Target is the chat a reply goes back to.
type Target interface {
	ID() int64
	Reply(ctx context.Context, text string) error
	Typing(ctx context.Context) error
}

// chatTarget binds a Sender to one chat.
type chatTarget struct {
	tg     Sender
	chatID int64
}

func newChatTarget(tg Sender, chatID int64) *chatTarget {
	return &chatTarget{tg: tg, chatID: chatID}
}

func (c *chatTarget) ID() int64 {
	return c.chatID
}

func (c *chatTarget) Reply(ctx context.Context, text string) error {
	_, err := c.tg.SendMessage(ctx, &tbot.SendMessageParams{
		ChatID: c.chatID,
		Text:   text,
	})
	return err
}

func (c *chatTarget) Typing(ctx context.Context) error {
	_, err := c.tg.SendChatAction(ctx, &tbot.SendChatActionParams{
		ChatID: c.chatID,
		Action: models.ChatActionTyping,
	})
	return err
}
