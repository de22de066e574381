package handlers

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/edgard/thanksbot/internal/database"
)

// DateLayout is how message dates are shown to users.
const DateLayout = time.DateOnly

// FormatAccepted fills the {recipient}, {message} and {date} placeholders of
// template. User-supplied values are HTML-escaped.
func FormatAccepted(template string, message *database.ThanksMessage) string {
	r := strings.NewReplacer(
		"{recipient}", html.EscapeString(message.RecipientUsername),
		"{message}", html.EscapeString(message.MessageText),
		"{date}", message.MessageDate.Format(DateLayout),
	)
	return r.Replace(template)
}

// FormatStats renders the total and the ranking, one "handle - count" line
// per recipient. The result is plain text.
func FormatStats(header, empty string, stats *database.Stats) string {
	var sb strings.Builder
	sb.WriteString(strings.ReplaceAll(header, "{total}", strconv.FormatInt(stats.Total, 10)))
	sb.WriteString("\n")

	if len(stats.TopRecipients) == 0 {
		sb.WriteString(empty)
		return sb.String()
	}
	for i, rc := range stats.TopRecipients {
		fmt.Fprintf(&sb, "%s - %d", rc.Recipient, rc.Count)
		if i < len(stats.TopRecipients)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

