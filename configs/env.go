package configs

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type EnvConfig struct {
	ApplicationName string
	ContextPath     string
	PropertiesPath  string
	MessagesPath    string
}

var Env = &EnvConfig{}

// LoadEnv reads an optional .env file into the process environment and snapshots the variables used at startup
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "weather-search"),
		ContextPath:     getStringOrDefault("CONTEXT_PATH", "/weather-search"),
		PropertiesPath:  getStringOrDefault("PROPERTIES_FILE_PATH", "configs/application.yml"),
		MessagesPath:    getStringOrDefault("MESSAGES_FILE_PATH", "configs/messages.yml"),
	}
	return nil
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
