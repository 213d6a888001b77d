package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iurnickita/lottobtc/internal/config"
	"github.com/iurnickita/lottobtc/internal/drawdate"
	"github.com/iurnickita/lottobtc/internal/handler"
	"github.com/iurnickita/lottobtc/internal/logger"
	"github.com/iurnickita/lottobtc/internal/service"
	"github.com/iurnickita/lottobtc/internal/sink"
)

const (
	outputConsole = "console"
	outputTable   = "table"
)

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lottobtc",
		Short:         "What 100 € in bitcoin bought on lotto draw day is worth today",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("tz", "", "time zone of draw dates (IANA name or Local)")
	flags.String("gecko-url", "", "CoinGecko API base URL")
	flags.Duration("gecko-timeout", 0, "price request timeout")
	flags.String("fail-class", "", "row class for winnings below the investment (failure or fail)")

	rootCmd.AddCommand(newCalcCmd(out), newServeCmd())
	return rootCmd
}

func newCalcCmd(out io.Writer) *cobra.Command {
	calcCmd := &cobra.Command{
		Use:   "calc [datetime...]",
		Short: "Calculate winnings for the draw following each datetime (yyyy-MM-ddTHH:mm), now by default",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			return runCalc(cmd, args, output, out)
		},
	}
	calcCmd.Flags().StringP("output", "o", outputConsole, "output format: console or table")
	return calcCmd
}

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator page with a results table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, zaplog, err := setup(cmd)
			if err != nil {
				return err
			}
			defer zaplog.Sync()

			svc, err := service.NewService(cfg.Service, zaplog)
			if err != nil {
				return err
			}
			return handler.Serve(cfg.Handler, svc, zaplog)
		},
	}
	serveCmd.Flags().String("addr", "", "listen address")
	return serveCmd
}

func runCalc(cmd *cobra.Command, args []string, output string, out io.Writer) error {
	cfg, zaplog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	svc, err := service.NewService(cfg.Service, zaplog)
	if err != nil {
		return err
	}

	var resultSink sink.Sink
	var table *sink.TableSink
	switch output {
	case outputConsole:
		resultSink = sink.NewConsoleSink(out)
	case outputTable:
		table = sink.NewTableSink(cfg.Handler.FailClass)
		resultSink = table
	default:
		return fmt.Errorf("unknown output %q", output)
	}

	if len(args) == 0 {
		args = []string{drawdate.ToDatetimeString(time.Now().In(svc.Location()))}
	}

	control := service.NewControl(svc, resultSink, zaplog)
	for _, raw := range args {
		if _, err := control.Submit(cmd.Context(), raw); err != nil {
			return fmt.Errorf("%s: %w", raw, err)
		}
	}

	if table != nil {
		table.WriteTable(out)
	}
	return nil
}

// Конфигурация из окружения, флаги командной строки имеют приоритет
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return config.Config{}, nil, err
	}

	flags := cmd.Flags()
	overrideString := func(name string, target *string) {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	overrideString("log-level", &cfg.Logger.LogLevel)
	overrideString("tz", &cfg.Service.TimeZone)
	overrideString("gecko-url", &cfg.Service.GeckoAddr)
	overrideString("fail-class", &cfg.Handler.FailClass)
	if flags.Lookup("addr") != nil {
		overrideString("addr", &cfg.Handler.ServerAddr)
	}
	if flags.Changed("gecko-timeout") {
		cfg.Service.GeckoTimeout, _ = flags.GetDuration("gecko-timeout")
	}
	if err := sink.CheckFailClass(cfg.Handler.FailClass); err != nil {
		return config.Config{}, nil, err
	}

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, zaplog, nil
}
