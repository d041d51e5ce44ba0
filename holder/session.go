package holder

import (
	"Pictor/lib/sl"
	"Pictor/storage"
	"log/slog"
)

// State is the conversation state of a single user: NoStyleChosen or StyleChosen.
type State interface {
	state()
}

type NoStyleChosen struct{}

type StyleChosen struct {
	Key string
}

func (NoStyleChosen) state() {}
func (StyleChosen) state()   {}

type SessionManager struct {
	storage storage.SessionStorage
	log     *slog.Logger
}

func NewSessionManager(store storage.SessionStorage, log *slog.Logger) *SessionManager {
	return &SessionManager{
		storage: store,
		log:     log.With(sl.Module("sessions")),
	}
}

// State reads the user's current state; a storage failure reads as NoStyleChosen
func (sm *SessionManager) State(userId int64) State {
	key, ok, err := sm.storage.GetStyle(userId)
	if err != nil {
		sm.log.With(slog.Int64("user", userId)).Error("getting style", sl.Err(err))
		return NoStyleChosen{}
	}
	if !ok {
		return NoStyleChosen{}
	}
	return StyleChosen{Key: key}
}

func (sm *SessionManager) ChooseStyle(userId int64, key string) error {
	if err := sm.storage.SetStyle(userId, key); err != nil {
		sm.log.With(slog.Int64("user", userId)).Error("setting style", sl.Err(err))
		return err
	}
	sm.log.With(
		slog.Int64("user", userId),
		slog.String("style", key),
	).Debug("style chosen")
	return nil
}
