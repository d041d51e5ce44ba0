package bot

import (
	"Pictor/core"
	"Pictor/lib/sl"
	"Pictor/styles"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

type TgBot struct {
	conf       *core.Config
	api        *tgbotapi.BotAPI
	controller *Controller
	log        *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTgBot(conf *core.Config, log *slog.Logger) (*TgBot, error) {
	api, err := tgbotapi.NewBotAPI(conf.TelegramApiKey)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	api.Debug = conf.TelegramDebug

	ctx, cancel := context.WithCancel(context.Background())
	return &TgBot{
		conf:   conf,
		api:    api,
		log:    log.With(sl.Module("telegram"), slog.String("bot", api.Self.UserName)),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// SetController set conversation controller
func (t *TgBot) SetController(controller *Controller) {
	t.controller = controller
}

// Start polls for updates until Stop is called
func (t *TgBot) Start() error {
	if t.controller == nil {
		return errors.New("controller is not set")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := t.api.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("getting updates: %w", err)
	}

	for update := range updates {
		t.wg.Add(1)
		go func(update tgbotapi.Update) {
			defer t.wg.Done()
			t.handleUpdate(update)
		}(update)
	}
	return nil
}

// Stop stops polling, cancels running generations and waits for handlers
func (t *TgBot) Stop() {
	t.api.StopReceivingUpdates()
	t.cancel()
	t.wg.Wait()
}

func (t *TgBot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			t.log.With(
				slog.Int("update", update.UpdateID),
				slog.String("stack", string(debug.Stack())),
			).Error("handler panic", slog.Any("panic", r))
		}
	}()

	if query := update.CallbackQuery; query != nil {
		if query.From == nil || query.Message == nil || query.Message.Chat == nil {
			return
		}
		err := t.controller.SelectStyle(query.Message.Chat.ID, int64(query.From.ID), query.ID, query.Data)
		if err != nil {
			t.log.With(slog.Int("user", query.From.ID)).Debug("selection rejected", sl.Err(err))
		}
		return
	}

	incoming := update.Message
	if incoming == nil || incoming.From == nil || incoming.Chat == nil {
		return
	}
	chatId := incoming.Chat.ID
	userId := int64(incoming.From.ID)

	if incoming.IsCommand() {
		switch incoming.Command() {
		case "start":
			t.controller.Start(chatId)
		case "styles":
			t.controller.ListStyles(chatId)
		}
		return
	}

	if incoming.Text == "" {
		return
	}
	t.log.With(
		slog.Int64("user", userId),
		slog.String("username", incoming.From.UserName),
		sl.Text("text", incoming.Text),
	).Info("incoming message")

	if _, err := t.controller.Prompt(t.ctx, chatId, userId, incoming.Text); err != nil {
		t.log.With(slog.Int64("user", userId)).Debug("prompt rejected", sl.Err(err))
	}
}

func (t *TgBot) SendText(chatId int64, text string) error {
	msg := tgbotapi.NewMessage(chatId, text)
	_, err := t.api.Send(msg)
	return err
}

func (t *TgBot) SendMarkdown(chatId int64, text string) error {
	msg := tgbotapi.NewMessage(chatId, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := t.api.Send(msg)
	return err
}

// SendOptions renders one inline button per row
func (t *TgBot) SendOptions(chatId int64, text string, options []styles.Option) error {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Key),
		))
	}
	msg := tgbotapi.NewMessage(chatId, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err := t.api.Send(msg)
	return err
}

// SendPhoto lets telegram fetch the image by url
func (t *TgBot) SendPhoto(chatId int64, url string, caption string) error {
	photo := tgbotapi.NewPhotoShare(chatId, url)
	photo.Caption = caption
	_, err := t.api.Send(photo)
	return err
}

func (t *TgBot) AnswerCallback(callbackId string) error {
	_, err := t.api.AnswerCallbackQuery(tgbotapi.NewCallback(callbackId, ""))
	return err
}

var _ Messenger = (*TgBot)(nil)
