package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender is the subset of *bot.Bot the handlers need.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// replyHandler adapts a replyFunc to the Telegram handler signature.
type replyHandler struct {
	deps  HandlerDeps
	name  string
	reply replyFunc
}

func newReplyHandler(deps HandlerDeps, name string, reply replyFunc) bot.HandlerFunc {
	h := replyHandler{deps: deps, name: name, reply: reply}
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.serve(ctx, b, update)
	}
}

// serve answers one update with exactly one message. A panic in the reply
// flow is turned into the general error notice.
func (h replyHandler) serve(ctx context.Context, sender Sender, update *models.Update) {
	log := h.deps.Logger.With("handler", h.name)

	ev, ok := eventFromUpdate(update)
	if !ok {
		log.DebugContext(ctx, "Ignoring update without text message", "update_id", update.ID)
		return
	}

	reply := h.safeReply(ctx, ev)

	params := &bot.SendMessageParams{
		ChatID:    ev.ChatID,
		Text:      reply.Text,
		ParseMode: reply.ParseMode,
		ReplyParameters: &models.ReplyParameters{
			MessageID:                ev.MessageID,
			AllowSendingWithoutReply: true,
		},
	}
	if _, err := sender.SendMessage(ctx, params); err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", ev.ChatID)
	}
}

func (h replyHandler) safeReply(ctx context.Context, ev Event) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			h.deps.Logger.ErrorContext(ctx, "Recovered from panic while processing message",
				"handler", h.name, "panic", fmt.Sprint(r), "chat_id", ev.ChatID)
			reply = Reply{Text: h.deps.Config.Messages.GeneralError}
		}
	}()
	return h.reply(ctx, ev)
}

// eventFromUpdate extracts the text message from update. Non-message
// updates and messages without text are not events.
func eventFromUpdate(update *models.Update) (Event, bool) {
	if update == nil || update.Message == nil || update.Message.Text == "" {
		return Event{}, false
	}
	msg := update.Message
	ev := Event{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      msg.Text,
	}
	if msg.From != nil {
		ev.SenderID = msg.From.ID
		ev.SenderUsername = msg.From.Username
	}
	return ev, true
}
