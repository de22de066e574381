package thanks_test

import (
	"errors"
	"testing"

	errs "github.com/edgard/thanksbot/internal/errors"
	"github.com/edgard/thanksbot/internal/thanks"
)

func TestParse(t *testing.T) {
	t.Parallel()

	type parseTestCase struct {
		name          string
		input         string
		wantRecipient string
		wantBody      string
		wantErr       error
	}

	testGroups := map[string][]parseTestCase{
		"Accepted": {
			{
				name:          "Simple message",
				input:         "@kolya thanks for the help",
				wantRecipient: "@kolya",
				wantBody:      "thanks for the help",
			},
			{
				name:          "Single word body",
				input:         "@anna merci",
				wantRecipient: "@anna",
				wantBody:      "merci",
			},
			{
				name:          "Run of spaces between handle and body",
				input:         "@bob     great review",
				wantRecipient: "@bob",
				wantBody:      "great review",
			},
			{
				name:          "Tab and newline separators",
				input:         "@bob\t\nthanks\nfor everything",
				wantRecipient: "@bob",
				wantBody:      "thanks\nfor everything",
			},
			{
				name:          "Surrounding whitespace is trimmed",
				input:         "   @user123 спасибо за помощь!   ",
				wantRecipient: "@user123",
				wantBody:      "спасибо за помощь!",
			},
			{
				name:          "Handle is kept verbatim",
				input:         "@Some_User.Name-1 cheers",
				wantRecipient: "@Some_User.Name-1",
				wantBody:      "cheers",
			},
			{
				name:          "Inner whitespace of body preserved",
				input:         "@x a  b   c",
				wantRecipient: "@x",
				wantBody:      "a  b   c",
			},
		},
		"Missing body": {
			{name: "Empty input", input: "", wantErr: thanks.ErrMissingBody},
			{name: "Whitespace only", input: "   \t ", wantErr: thanks.ErrMissingBody},
			{name: "Single word", input: "hello", wantErr: thanks.ErrMissingBody},
			{name: "Handle only", input: "@kolya", wantErr: thanks.ErrMissingBody},
			{name: "Handle with trailing spaces", input: "@kolya   ", wantErr: thanks.ErrMissingBody},
		},
		"Invalid recipient": {
			{name: "Plain first word", input: "friend thanks", wantErr: thanks.ErrInvalidRecipientFormat},
			{name: "At sign not first", input: "thanks @kolya", wantErr: thanks.ErrInvalidRecipientFormat},
			{name: "Bare at sign", input: "@ thanks", wantErr: thanks.ErrInvalidRecipientFormat},
			{name: "Command-looking word", input: "/stats please", wantErr: thanks.ErrInvalidRecipientFormat},
		},
	}

	for groupName, cases := range testGroups {
		groupName, cases := groupName, cases
		t.Run(groupName, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				tc := tc
				t.Run(tc.name, func(t *testing.T) {
					t.Parallel()

					got, err := thanks.Parse(tc.input)
					if tc.wantErr != nil {
						if !errors.Is(err, tc.wantErr) {
							t.Fatalf("Parse(%q) error = %v, want %v", tc.input, err, tc.wantErr)
						}
						if code := errs.Code(err); code != errs.CodeParse {
							t.Errorf("Parse(%q) error code = %q, want %q", tc.input, code, errs.CodeParse)
						}
						return
					}

					if err != nil {
						t.Fatalf("Parse(%q) unexpected error: %v", tc.input, err)
					}
					if got.Recipient != tc.wantRecipient {
						t.Errorf("Recipient = %q, want %q", got.Recipient, tc.wantRecipient)
					}
					if got.Body != tc.wantBody {
						t.Errorf("Body = %q, want %q", got.Body, tc.wantBody)
					}
				})
			}
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	const input = "@kolya thanks for the help"
	first, err := thanks.Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := thanks.Parse(input)
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if again != first {
			t.Fatalf("Parse() = %+v, want %+v", again, first)
		}
	}
}

func TestIsHandle(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"@kolya": true,
		"@a":     true,
		"@":      false,
		"":       false,
		"kolya":  false,
		"a@b":    false,
	}
	for input, want := range tests {
		if got := thanks.IsHandle(input); got != want {
			t.Errorf("IsHandle(%q) = %v, want %v", input, got, want)
		}
	}
}
