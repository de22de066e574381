// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"
)

// AdminOnly wraps next so that only the configured admin user reaches it.
// Anyone else gets the "not authorized" notice.
func AdminOnly(deps HandlerDeps, next replyFunc) replyFunc {
	return func(ctx context.Context, ev Event) Reply {
		if deps.Config.IsAdmin(ev.SenderID) {
			return next(ctx, ev)
		}

		deps.Logger.With("middleware", "AdminOnly").WarnContext(ctx, "Unauthorized access attempt",
			"user_id", ev.SenderID, "chat_id", ev.ChatID)
		return Reply{Text: deps.Config.Messages.NotAuthorized}
	}
}
