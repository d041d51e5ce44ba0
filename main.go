package main

import (
	"Pictor/ai"
	"Pictor/bot"
	"Pictor/core"
	"Pictor/holder"
	"Pictor/lib/sl"
	"Pictor/storage"
	"Pictor/styles"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	envPath := flag.String("env", ".env", "path to env file with secrets")
	flag.Parse()

	envErr := godotenv.Load(*envPath)

	conf := core.MustLoad(*configPath)
	log := setupLogger(conf.Env)
	log.With(
		slog.String("config", *configPath),
		slog.String("env", conf.Env),
		slog.String("model", conf.ImageModel),
		sl.Secret(conf.OpenAIApiKey),
	).Info("starting pictor bot")
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("reading env file", sl.Err(envErr))
	}

	var journal storage.JournalStorage
	if conf.Mongo.Enabled {
		var err error
		journal, err = storage.NewMongoJournal(conf.MongoURI(), conf.Mongo.Database, log)
		if err != nil {
			log.With(
				slog.String("db", conf.Mongo.Database),
				slog.String("user", conf.Mongo.User),
				slog.String("host", conf.Mongo.Host),
			).Error("falling back to memory", sl.Err(err))
			journal = storage.NewMemoryJournal(0)
		} else {
			log.Info("using MongoDB journal")
		}
	} else {
		journal = storage.NewMemoryJournal(0)
		log.Info("using in-memory journal")
	}

	tgBot, err := bot.NewTgBot(conf, log)
	if err != nil {
		log.Error("creating telegram", sl.Err(err))
		return
	}

	catalog := styles.Default()
	sessions := holder.NewSessionManager(storage.NewMemoryStorage(), log)
	dispatcher := bot.NewDispatcher(tgBot, ai.NewImageClient(conf, log), journal, catalog.Sizes(), log)
	tgBot.SetController(bot.NewController(catalog, sessions, dispatcher, tgBot, log))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := tgBot.Start(); err != nil {
			log.Error("bot stopped with error", sl.Err(err))
		}
	}()

	log.Info("bot started")

	sig := <-sigChan
	log.Info("received signal, shutting down", slog.String("signal", sig.String()))

	tgBot.Stop()

	if err := journal.Close(); err != nil {
		log.Error("error closing journal", sl.Err(err))
	}

	log.Info("shutdown complete")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal, envDev:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
