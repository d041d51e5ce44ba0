package bot

import (
	"Pictor/holder"
	"Pictor/storage"
	"Pictor/styles"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

type delivery struct {
	kind    string
	chatId  int64
	text    string
	url     string
	options []styles.Option
}

type fakeMessenger struct {
	mu        sync.Mutex
	sent      []delivery
	callbacks []string
	failSend  bool
}

func (f *fakeMessenger) add(s delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, s)
	if f.failSend {
		return errors.New("send failed")
	}
	return nil
}

func (f *fakeMessenger) SendText(chatId int64, text string) error {
	return f.add(delivery{kind: "text", chatId: chatId, text: text})
}

func (f *fakeMessenger) SendMarkdown(chatId int64, text string) error {
	return f.add(delivery{kind: "markdown", chatId: chatId, text: text})
}

func (f *fakeMessenger) SendOptions(chatId int64, text string, options []styles.Option) error {
	return f.add(delivery{kind: "options", chatId: chatId, text: text, options: options})
}

func (f *fakeMessenger) SendPhoto(chatId int64, url string, caption string) error {
	return f.add(delivery{kind: "photo", chatId: chatId, url: url, text: caption})
}

func (f *fakeMessenger) AnswerCallback(callbackId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, callbackId)
	return nil
}

func (f *fakeMessenger) messages() []delivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]delivery, len(f.sent))
	copy(out, f.sent)
	return out
}

type generateCall struct {
	prompt string
	size   string
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls []generateCall
	fail  map[string]error
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, size string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, generateCall{prompt: prompt, size: size})
	if err, ok := g.fail[size]; ok {
		return "", err
	}
	return fmt.Sprintf("https://img.example/%s.png", size), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	messenger  *fakeMessenger
	generator  *fakeGenerator
	journal    *storage.MemoryJournal
	store      *storage.MemoryStorage
	controller *Controller
}

func newFixture() *fixture {
	log := discardLogger()
	catalog := styles.Default()
	f := &fixture{
		messenger: &fakeMessenger{},
		generator: &fakeGenerator{fail: map[string]error{}},
		journal:   storage.NewMemoryJournal(100),
		store:     storage.NewMemoryStorage(),
	}
	dispatcher := NewDispatcher(f.messenger, f.generator, f.journal, catalog.Sizes(), log)
	sessions := holder.NewSessionManager(f.store, log)
	f.controller = NewController(catalog, sessions, dispatcher, f.messenger, log)
	return f
}
