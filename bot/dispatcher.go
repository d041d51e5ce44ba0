package bot

import (
	"Pictor/core"
	"Pictor/lib/sl"
	"Pictor/storage"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// PromptRequest is built for every accepted free-text message
type PromptRequest struct {
	ChatId int64
	UserId int64
	Text   string
	Style  string
	Suffix string
}

func (r PromptRequest) FullPrompt() string {
	return r.Text + ", " + r.Suffix
}

// Outcome of a single size: either ImageURL or Err is set
type Outcome struct {
	Size     string
	ImageURL string
	Err      error
}

type Dispatcher struct {
	messenger Messenger
	generator core.ImageGenerator
	journal   storage.JournalStorage
	sizes     []string
	log       *slog.Logger
}

func NewDispatcher(messenger Messenger, generator core.ImageGenerator, journal storage.JournalStorage, sizes []string, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		generator: generator,
		journal:   journal,
		sizes:     sizes,
		log:       log.With(sl.Module("dispatcher")),
	}
}

// Dispatch renders the prompt at every configured size, one request at a
// time and in order. A failed size is reported to the user and does not stop
// the remaining ones.
func (d *Dispatcher) Dispatch(ctx context.Context, req PromptRequest) []Outcome {
	requestId := uuid.NewString()
	prompt := req.FullPrompt()
	log := d.log.With(
		slog.String("request", requestId),
		slog.Int64("user", req.UserId),
		slog.String("style", req.Style),
	)
	log.With(sl.Text("prompt", req.Text)).Info("generating images")

	d.send(log, func() error { return d.messenger.SendText(req.ChatId, waitText) })

	outcomes := make([]Outcome, 0, len(d.sizes))
	for _, size := range d.sizes {
		if ctx.Err() != nil {
			log.Warn("dispatch interrupted", slog.String("size", size), sl.Err(ctx.Err()))
			break
		}

		outcome := Outcome{Size: size}
		outcome.ImageURL, outcome.Err = d.generator.Generate(ctx, prompt, size)

		if outcome.Err != nil {
			log.With(slog.String("size", size)).Error("generating image", sl.Err(outcome.Err))
			d.send(log, func() error { return d.messenger.SendText(req.ChatId, errorText(outcome.Err)) })
		} else {
			d.send(log, func() error { return d.messenger.SendPhoto(req.ChatId, outcome.ImageURL, sizeCaption(size)) })
		}

		d.record(log, requestId, req, outcome)
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (d *Dispatcher) send(log *slog.Logger, fn func() error) {
	if err := fn(); err != nil {
		log.Error("sending message", sl.Err(err))
	}
}

func (d *Dispatcher) record(log *slog.Logger, requestId string, req PromptRequest, outcome Outcome) {
	if d.journal == nil {
		return
	}
	rec := storage.GenerationRecord{
		RequestId: requestId,
		UserId:    req.UserId,
		ChatId:    req.ChatId,
		Style:     req.Style,
		Prompt:    req.FullPrompt(),
		Size:      outcome.Size,
		ImageURL:  outcome.ImageURL,
		CreatedAt: time.Now(),
	}
	if outcome.Err != nil {
		rec.Error = outcome.Err.Error()
	}
	if err := d.journal.Record(rec); err != nil {
		log.Warn("recording outcome", sl.Err(err))
	}
}
