package config

type Config struct {
	LogLevel string `env:"LOTTOBTC_LOG_LEVEL,default=info"`
}
