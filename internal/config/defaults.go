package config

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultDBPath     = "thanks.db"
	DefaultDBTimezone = "UTC"

	DefaultSQLMaintenanceSchedule = "0 0 3 * * 0" // Sundays at 03:00
	DefaultDailyReportSchedule    = "0 0 9 * * *" // every day at 09:00
)

// Default bot messages
var DefaultMessages = MessagesConfig{
	Welcome: "👋 Hi! I deliver thanks.\n\n" +
		"Send me a message in the format:\n" +
		"<code>@username message text</code>\n\n" +
		"Example:\n" +
		"<code>@user123 thanks for the help!</code>\n\n" +
		"Use /stats to see who has been thanked the most.",
	MissingBody:      "ℹ️ Please specify an @username and a message.",
	InvalidRecipient: "❌ The first word must be an @username.",
	Accepted: "✅ Message accepted!\n\n" +
		"👤 Recipient: <code>{recipient}</code>\n" +
		"📝 Text: <code>{message}</code>\n" +
		"📅 Date: <code>{date}</code>",
	StoreError:        "⚠️ The message was not saved because of a storage error. Please try again later.",
	StatsHeader:       "📊 Total messages: {total}\n\n🏆 Top recipients:",
	StatsEmpty:        "No recipients yet.",
	StatsUnavailable:  "⚠️ Statistics are unavailable right now. Please try again later.",
	GeneralError:      "⚠️ An error occurred while processing your message.",
	NotAuthorized:     "🚫 You are not allowed to use this command.",
	DailyReportHeader: "🗓 Thanks report for {date}",
}

// Default scheduled tasks
var DefaultTasks = map[string]TaskConfig{
	"sql_maintenance": {Enabled: true, Schedule: DefaultSQLMaintenanceSchedule},
	"daily_report":    {Enabled: false, Schedule: DefaultDailyReportSchedule},
}

var defaults = map[string]any{
	"log.level": DefaultLogLevel,
	"log.json":  DefaultLogJSON,

	"telegram.admin_id":         0,
	"telegram.stats_admin_only": false,
	"telegram.report_chat_id":   0,

	"database.path":     DefaultDBPath,
	"database.timezone": DefaultDBTimezone,

	"messages.welcome":             DefaultMessages.Welcome,
	"messages.missing_body":        DefaultMessages.MissingBody,
	"messages.invalid_recipient":   DefaultMessages.InvalidRecipient,
	"messages.accepted":            DefaultMessages.Accepted,
	"messages.store_error":         DefaultMessages.StoreError,
	"messages.stats_header":        DefaultMessages.StatsHeader,
	"messages.stats_empty":         DefaultMessages.StatsEmpty,
	"messages.stats_unavailable":   DefaultMessages.StatsUnavailable,
	"messages.general_error":       DefaultMessages.GeneralError,
	"messages.not_authorized":      DefaultMessages.NotAuthorized,
	"messages.daily_report_header": DefaultMessages.DailyReportHeader,
}
