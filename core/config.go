package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env            string        `yaml:"env" env:"ENV" env-default:"prod" env-description:"logging profile: local, dev or prod"`
	TelegramApiKey string        `yaml:"telegram_api_key" env:"TELEGRAM_BOT_TOKEN" env-required:"true" env-description:"telegram bot token"`
	TelegramDebug  bool          `yaml:"telegram_debug" env:"TELEGRAM_DEBUG" env-default:"false"`
	OpenAIApiKey   string        `yaml:"openai_api_key" env:"OPENAI_API_KEY" env-required:"true" env-description:"image generation api key"`
	OpenAIBaseURL  string        `yaml:"openai_base_url" env:"OPENAI_BASE_URL" env-default:""`
	ImageModel     string        `yaml:"image_model" env:"IMAGE_MODEL" env-default:"dall-e-2"`
	ImageTimeout   time.Duration `yaml:"image_timeout" env:"IMAGE_TIMEOUT" env-default:"120s" env-description:"timeout of a single image request"`
	Mongo          struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"pictor"`
	} `yaml:"mongo"`
}

// Load reads the yaml file at path, if it exists, and applies environment
// overrides on top of it.
func Load(path string) (*Config, error) {
	conf := &Config{}

	var err error
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(conf)
	} else {
		err = cleanenv.ReadConfig(path, conf)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("config: %s; %s", err, desc)
	}
	return conf, nil
}

func MustLoad(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return conf
}

// MongoURI builds the connection string for the journal database
func (c *Config) MongoURI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s",
		c.Mongo.User, c.Mongo.Password,
		c.Mongo.Host, c.Mongo.Port)
}
