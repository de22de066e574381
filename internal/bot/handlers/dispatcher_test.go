package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/thanksbot/internal/config"
	"github.com/edgard/thanksbot/internal/database"
	errs "github.com/edgard/thanksbot/internal/errors"
)

var fixedNow = time.Date(2026, time.October, 19, 14, 30, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Telegram: config.TelegramConfig{Token: "test-token"},
		Database: config.DatabaseConfig{Path: "unused", Timezone: "UTC"},
		Messages: config.DefaultMessages,
	}
}

func newTestStore(t *testing.T) database.Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "thanks.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return database.NewStore(db, testLogger(), database.WithClock(func() time.Time { return fixedNow }))
}

func newTestDeps(t *testing.T, store database.Store) HandlerDeps {
	t.Helper()
	return HandlerDeps{Logger: testLogger(), Config: testConfig(), Store: store}
}

// stubStore returns canned results and counts calls.
type stubStore struct {
	saveErr   error
	statsErr  error
	panicMsg  string
	saveCalls int
}

func (s *stubStore) Ping(context.Context) error { return nil }

func (s *stubStore) SaveThanks(_ context.Context, message *database.ThanksMessage) error {
	s.saveCalls++
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.saveErr != nil {
		return s.saveErr
	}
	message.ID = int64(s.saveCalls)
	message.MessageDate = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	return nil
}

func (s *stubStore) GetThanks(context.Context, int64) (*database.ThanksMessage, error) {
	return nil, nil
}

func (s *stubStore) GetStats(context.Context) (*database.Stats, error) {
	if s.statsErr != nil {
		return nil, s.statsErr
	}
	return &database.Stats{TopRecipients: []database.RecipientCount{}}, nil
}

func (s *stubStore) GetStatsForDate(ctx context.Context, _ time.Time) (*database.Stats, error) {
	return s.GetStats(ctx)
}

func (s *stubStore) RunSQLMaintenance(context.Context) error { return nil }

func TestDispatchRejectsMalformedMessages(t *testing.T) {
	t.Parallel()

	msgs := config.DefaultMessages
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "no handle", text: "hello", want: msgs.MissingBody},
		{name: "first word is not a handle", text: "friend thanks", want: msgs.InvalidRecipient},
		{name: "handle without body", text: "@kolya", want: msgs.MissingBody},
		{name: "handle with blank body", text: "  @kolya   ", want: msgs.MissingBody},
		{name: "bare prefix", text: "@ thanks", want: msgs.InvalidRecipient},
		{name: "unknown command", text: "/unknown thing", want: msgs.InvalidRecipient},
	}

	store := &stubStore{}
	d := NewDispatcher(newTestDeps(t, store))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := d.Dispatch(context.Background(), Event{ChatID: 1, SenderID: 2, Text: tt.text})
			if reply.Text != tt.want {
				t.Errorf("Dispatch(%q) = %q, want %q", tt.text, reply.Text, tt.want)
			}
		})
	}

	if store.saveCalls != 0 {
		t.Errorf("rejected messages must not be saved, got %d SaveThanks calls", store.saveCalls)
	}
}

func TestDispatchAcceptsThanks(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	d := NewDispatcher(newTestDeps(t, store))
	ctx := context.Background()

	reply := d.Dispatch(ctx, Event{ChatID: 10, MessageID: 3, SenderID: 42, SenderUsername: "alice", Text: "@kolya thanks for the help"})

	if reply.ParseMode != models.ParseModeHTML {
		t.Errorf("ParseMode = %q, want HTML", reply.ParseMode)
	}
	for _, want := range []string{"<code>@kolya</code>", "<code>thanks for the help</code>", "<code>2026-10-19</code>"} {
		if !strings.Contains(reply.Text, want) {
			t.Errorf("reply %q does not contain %q", reply.Text, want)
		}
	}

	saved, err := store.GetThanks(ctx, 1)
	if err != nil {
		t.Fatalf("GetThanks() error: %v", err)
	}
	if saved == nil {
		t.Fatal("message was not persisted")
	}
	if saved.RecipientUsername != "@kolya" || saved.MessageText != "thanks for the help" {
		t.Errorf("saved = (%q, %q), want (@kolya, thanks for the help)", saved.RecipientUsername, saved.MessageText)
	}
	if saved.SenderID != 42 || saved.SenderUsername.String != "alice" {
		t.Errorf("saved sender = (%d, %v), want (42, alice)", saved.SenderID, saved.SenderUsername)
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if stats.Total != 1 {
		t.Errorf("Total = %d, want 1", stats.Total)
	}
}

func TestDispatchEscapesHTML(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(newTestDeps(t, &stubStore{}))
	reply := d.Dispatch(context.Background(), Event{SenderID: 1, Text: "@bob <b>you</b> & co"})

	if !strings.Contains(reply.Text, "<code>&lt;b&gt;you&lt;/b&gt; &amp; co</code>") {
		t.Errorf("body not escaped in %q", reply.Text)
	}
}

func TestDispatchStoreFailures(t *testing.T) {
	t.Parallel()

	msgs := config.DefaultMessages
	storeErr := errs.NewStoreError("disk full", errors.New("io"))
	otherErr := errors.New("something odd")

	tests := []struct {
		name  string
		store *stubStore
		text  string
		want  string
	}{
		{name: "save store error", store: &stubStore{saveErr: storeErr}, text: "@kolya thanks", want: msgs.StoreError},
		{name: "save unexpected error", store: &stubStore{saveErr: otherErr}, text: "@kolya thanks", want: msgs.GeneralError},
		{name: "stats store error", store: &stubStore{statsErr: storeErr}, text: "/stats", want: msgs.StatsUnavailable},
		{name: "stats unexpected error", store: &stubStore{statsErr: otherErr}, text: "/stats", want: msgs.GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(newTestDeps(t, tt.store))
			reply := d.Dispatch(context.Background(), Event{SenderID: 1, Text: tt.text})
			if reply.Text != tt.want {
				t.Errorf("Dispatch(%q) = %q, want %q", tt.text, reply.Text, tt.want)
			}
		})
	}
}

func TestDispatchCommands(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	d := NewDispatcher(newTestDeps(t, store))
	ctx := context.Background()
	msgs := config.DefaultMessages

	for _, text := range []string{"/start", "/help", "/start@MyThanksBot", "/HELP extra words"} {
		if reply := d.Dispatch(ctx, Event{Text: text}); reply.Text != msgs.Welcome {
			t.Errorf("Dispatch(%q) = %q, want welcome", text, reply.Text)
		}
	}

	empty := d.Dispatch(ctx, Event{Text: "/stats"})
	wantEmpty := "📊 Total messages: 0\n\n🏆 Top recipients:\nNo recipients yet."
	if empty.Text != wantEmpty {
		t.Errorf("empty stats = %q, want %q", empty.Text, wantEmpty)
	}

	for _, text := range []string{"@kolya one", "@kolya two", "@anna three"} {
		d.Dispatch(ctx, Event{SenderID: 5, Text: text})
	}
	stats := d.Dispatch(ctx, Event{Text: "/stats@MyThanksBot"})
	wantStats := "📊 Total messages: 3\n\n🏆 Top recipients:\n@kolya - 2\n@anna - 1"
	if stats.Text != wantStats {
		t.Errorf("stats = %q, want %q", stats.Text, wantStats)
	}
}

func TestStatsAdminOnly(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &stubStore{})
	deps.Config.Telegram.AdminID = 99
	deps.Config.Telegram.StatsAdminOnly = true
	d := NewDispatcher(deps)
	ctx := context.Background()

	if reply := d.Dispatch(ctx, Event{SenderID: 7, Text: "/stats"}); reply.Text != config.DefaultMessages.NotAuthorized {
		t.Errorf("non-admin /stats = %q, want not authorized", reply.Text)
	}
	if reply := d.Dispatch(ctx, Event{SenderID: 99, Text: "/stats"}); !strings.HasPrefix(reply.Text, "📊 Total messages: 0") {
		t.Errorf("admin /stats = %q, want stats", reply.Text)
	}
	if reply := d.Dispatch(ctx, Event{SenderID: 7, Text: "/start"}); reply.Text != config.DefaultMessages.Welcome {
		t.Errorf("/start should stay public, got %q", reply.Text)
	}
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/start":             "start",
		"/Stats@thanks_bot":  "stats",
		"  /help me please":  "help",
		"@kolya /stats":      "",
		"hello":              "",
		"":                   "",
		"/":                  "",
		"/stats@":            "stats",
	}
	for input, want := range tests {
		if got := ParseCommand(input); got != want {
			t.Errorf("ParseCommand(%q) = %q, want %q", input, got, want)
		}
	}
}
