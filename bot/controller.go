package bot

import (
	"Pictor/holder"
	"Pictor/lib/sl"
	"Pictor/styles"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var ErrStyleNotChosen = errors.New("style not chosen")

// Controller turns platform events into replies and state changes
type Controller struct {
	catalog    *styles.Catalog
	sessions   *holder.SessionManager
	dispatcher *Dispatcher
	messenger  Messenger
	log        *slog.Logger
}

func NewController(catalog *styles.Catalog, sessions *holder.SessionManager, dispatcher *Dispatcher, messenger Messenger, log *slog.Logger) *Controller {
	return &Controller{
		catalog:    catalog,
		sessions:   sessions,
		dispatcher: dispatcher,
		messenger:  messenger,
		log:        log.With(sl.Module("controller")),
	}
}

func (c *Controller) Start(chatId int64) {
	c.reply(chatId, welcomeText)
}

func (c *Controller) ListStyles(chatId int64) {
	if err := c.messenger.SendOptions(chatId, chooseText, c.catalog.Options()); err != nil {
		c.log.With(slog.Int64("chat", chatId)).Error("sending styles", sl.Err(err))
	}
}

// SelectStyle answers the callback and stores the choice. A key missing from
// the catalog leaves the session untouched and produces no chat reply.
func (c *Controller) SelectStyle(chatId, userId int64, callbackId, key string) error {
	if err := c.messenger.AnswerCallback(callbackId); err != nil {
		c.log.With(slog.Int64("user", userId)).Warn("answering callback", sl.Err(err))
	}

	if !c.catalog.Has(key) {
		c.log.With(
			slog.Int64("user", userId),
			slog.String("style", key),
		).Warn("ignoring selection")
		return fmt.Errorf("%w: %q", styles.ErrUnknownStyle, key)
	}

	if err := c.sessions.ChooseStyle(userId, key); err != nil {
		return err
	}

	c.log.With(
		slog.Int64("user", userId),
		slog.String("style", key),
	).Info("style selected")

	if err := c.messenger.SendMarkdown(chatId, chosenText(key)); err != nil {
		c.log.With(slog.Int64("chat", chatId)).Error("sending message", sl.Err(err))
	}
	return nil
}

// Prompt runs generation for users who picked a style and guides the rest.
func (c *Controller) Prompt(ctx context.Context, chatId, userId int64, text string) ([]Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	switch st := c.sessions.State(userId).(type) {
	case holder.StyleChosen:
		suffix, err := c.catalog.SuffixFor(st.Key)
		if err != nil {
			c.log.With(slog.Int64("user", userId)).Error("stored style", sl.Err(err))
			c.reply(chatId, guidanceText)
			return nil, err
		}
		return c.dispatcher.Dispatch(ctx, PromptRequest{
			ChatId: chatId,
			UserId: userId,
			Text:   text,
			Style:  st.Key,
			Suffix: suffix,
		}), nil
	default:
		c.reply(chatId, guidanceText)
		return nil, ErrStyleNotChosen
	}
}

func (c *Controller) reply(chatId int64, text string) {
	if err := c.messenger.SendText(chatId, text); err != nil {
		c.log.With(slog.Int64("chat", chatId)).Error("sending message", sl.Err(err))
	}
}
