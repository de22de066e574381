package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its description and middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	Description string
}

// RegisterAllCommands initializes and returns a map of all available bot commands.
// Commands with a "@botname" suffix are not matched here and fall through to
// the default handler, which recognizes them as well.
func RegisterAllCommands(deps HandlerDeps, d *Dispatcher) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/"+CommandStart] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     CommandStart,
		Handler:     newReplyHandler(deps, CommandStart, d.Welcome),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: "How to send thanks",
	}
	handlers["/"+CommandHelp] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     CommandHelp,
		Handler:     newReplyHandler(deps, CommandHelp, d.Welcome),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: "How to send thanks",
	}
	handlers["/"+CommandStats] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     CommandStats,
		Handler:     newReplyHandler(deps, CommandStats, d.stats),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: "Total messages and top recipients",
	}

	return handlers
}

// NewDefaultHandler returns the handler for every message no command
// matched. Text messages are dispatched as candidate thanks messages.
func NewDefaultHandler(deps HandlerDeps, d *Dispatcher) tgbot.HandlerFunc {
	return newReplyHandler(deps, "thanks", d.Dispatch)
}
