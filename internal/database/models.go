package database

import (
	"database/sql"
	"time"
)

// MaxHandleLength is the column width of sender_username and recipient_username.
const MaxHandleLength = 100

// TopRecipientsLimit is how many recipients Stats reports.
const TopRecipientsLimit = 5

// ThanksMessage is an accepted "@handle text" message. Rows are append-only:
// once inserted they are never updated or deleted.
type ThanksMessage struct {
	ID                int64          `db:"id"`
	SenderID          int64          `db:"sender_id"`
	SenderUsername    sql.NullString `db:"sender_username"`
	RecipientUsername string         `db:"recipient_username"`
	MessageText       string         `db:"message_text"`
	MessageDate       time.Time      `db:"message_date"`
	CreatedAt         time.Time      `db:"created_at"`
}

// RecipientCount is one row of the top recipients ranking.
type RecipientCount struct {
	Recipient string `db:"recipient_username"`
	Count     int64  `db:"message_count"`
}

// Stats is the aggregate reported by the stats command.
type Stats struct {
	Total         int64
	TopRecipients []RecipientCount
}
