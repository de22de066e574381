// Package thanks parses inbound "@handle text" messages into a recipient
// and a message body.
package thanks

import (
	"strings"
	"unicode"

	errs "github.com/edgard/thanksbot/internal/errors"
)

// HandlePrefix marks the first token of a message as a recipient handle.
const HandlePrefix = "@"

var (
	// ErrMissingBody is returned when the input has no second whitespace-separated part.
	ErrMissingBody = errs.NewParseError("message must contain a recipient handle and a text")
	// ErrInvalidRecipientFormat is returned when the first token is not an @handle.
	ErrInvalidRecipientFormat = errs.NewParseError("first word must be an @handle")
)

// Thanks is a successfully parsed message.
type Thanks struct {
	Recipient string // first token, verbatim, including the @ prefix
	Body      string // remainder of the input, trimmed
}

// Parse splits raw on the first run of whitespace into a recipient handle and
// a body. It fails with ErrMissingBody when there is no body and with
// ErrInvalidRecipientFormat when the first token is not a non-empty @handle.
func Parse(raw string) (Thanks, error) {
	raw = strings.TrimSpace(raw)

	idx := strings.IndexFunc(raw, unicode.IsSpace)
	if idx < 0 {
		return Thanks{}, ErrMissingBody
	}

	recipient := raw[:idx]
	body := strings.TrimSpace(raw[idx:])
	if body == "" {
		return Thanks{}, ErrMissingBody
	}

	if !IsHandle(recipient) {
		return Thanks{}, ErrInvalidRecipientFormat
	}

	return Thanks{Recipient: recipient, Body: body}, nil
}

// IsHandle reports whether s starts with the handle prefix and has at least
// one character after it.
func IsHandle(s string) bool {
	return strings.HasPrefix(s, HandlePrefix) && len(s) > len(HandlePrefix)
}
