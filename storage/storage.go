package storage

import "time"

type Session struct {
	UserId    int64
	StyleKey  string
	UpdatedAt time.Time
}

// GenerationRecord is one outcome of a single size request
type GenerationRecord struct {
	RequestId string    `bson:"request_id"`
	UserId    int64     `bson:"user_id"`
	ChatId    int64     `bson:"chat_id"`
	Style     string    `bson:"style"`
	Prompt    string    `bson:"prompt"`
	Size      string    `bson:"size"`
	ImageURL  string    `bson:"image_url,omitempty"`
	Error     string    `bson:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r GenerationRecord) Failed() bool {
	return r.Error != ""
}

// SessionStorage keeps the style each user has picked. A missing session and
// a session with an empty StyleKey mean the same thing.
type SessionStorage interface {
	SetStyle(userId int64, styleKey string) error
	GetStyle(userId int64) (string, bool, error)
}

type JournalStorage interface {
	Record(rec GenerationRecord) error
	// Recent returns up to limit records of the user, newest first
	Recent(userId int64, limit int) ([]GenerationRecord, error)
	Close() error
}
