package config

type Config struct {
	ServerAddr string `env:"LOTTOBTC_ADDR,default=:8080"`
	// CSS-класс строки с выигрышем меньше вложения (failure или fail)
	FailClass string `env:"LOTTOBTC_FAIL_CLASS,default=failure"`
}
