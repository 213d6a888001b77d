package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	handlerConfig "github.com/iurnickita/lottobtc/internal/handler/config"
	loggerConfig "github.com/iurnickita/lottobtc/internal/logger/config"
	serviceConfig "github.com/iurnickita/lottobtc/internal/service/config"
)

const defaultEnvFile = ".env"

type Config struct {
	Handler handlerConfig.Config
	Service serviceConfig.Config
	Logger  loggerConfig.Config
}

// Конфигурация из переменных окружения. Файл .env (или LOTTOBTC_ENV_FILE)
// необязателен и не перекрывает уже заданные переменные.
func GetConfig() (Config, error) {
	envFile := os.Getenv("LOTTOBTC_ENV_FILE")
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, err
	}
	return cfg, nil
}
