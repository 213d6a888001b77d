package config

import "time"

type Config struct {
	GeckoAddr    string        `env:"LOTTOBTC_GECKO_URL,default=https://api.coingecko.com/api"`
	GeckoTimeout time.Duration `env:"LOTTOBTC_GECKO_TIMEOUT,default=30s"`
	// Имя часового пояса (IANA) или Local
	TimeZone string `env:"LOTTOBTC_TZ,default=Local"`
}

func (cfg Config) Location() (*time.Location, error) {
	if cfg.TimeZone == "" || cfg.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(cfg.TimeZone)
}
