package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iurnickita/lottobtc/internal/drawdate"
	"github.com/iurnickita/lottobtc/internal/model"
	"github.com/iurnickita/lottobtc/internal/service/config"
	"github.com/iurnickita/lottobtc/internal/service/geckoclient"
	"github.com/iurnickita/lottobtc/internal/winnings"
)

type Service interface {
	Calculate(ctx context.Context, input time.Time) (model.Result, error)
	Location() *time.Location
}

var (
	ErrInvalidDate = drawdate.ErrInvalidDate
	ErrFetchFailed = geckoclient.ErrFetchFailed
	ErrSuperseded  = errors.New("superseded by a newer request")
)

type service struct {
	loc    *time.Location
	gecko  geckoclient.GeckoClient
	zaplog *zap.Logger
}

func NewService(cfg config.Config, zaplog *zap.Logger) (Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	gecko := geckoclient.NewGeckoClient(cfg.GeckoAddr, cfg.GeckoTimeout, zaplog)

	return newService(loc, gecko, zaplog), nil
}

func newService(loc *time.Location, gecko geckoclient.GeckoClient, zaplog *zap.Logger) *service {
	return &service{
		loc:    loc,
		gecko:  gecko,
		zaplog: zaplog,
	}
}

func (service *service) Location() *time.Location {
	return service.loc
}

// Дата розыгрыша -> цена на дату -> текущая цена -> выигрыш.
// Запросы цен строго последовательные.
func (service *service) Calculate(ctx context.Context, input time.Time) (model.Result, error) {
	result := model.Result{
		RunID: uuid.New(),
		Input: input.In(service.loc),
	}
	result.Draw = drawdate.NextDraw(result.Input)

	historical, err := service.gecko.FetchAtDate(ctx, result.Draw)
	if err != nil {
		return model.Result{}, err
	}
	current, err := service.gecko.FetchCurrent(ctx)
	if err != nil {
		return model.Result{}, err
	}

	result.Historical = historical
	result.Current = current
	result.Winnings = winnings.Calculate(historical, current)

	service.zaplog.Info("winnings calculated",
		zap.String("run", result.RunID.String()),
		zap.String("draw", drawdate.ToLocaleString(result.Draw)),
		zap.String("historical", winnings.FormatQuote(historical)),
		zap.String("current", winnings.FormatQuote(current)),
		zap.String("winnings", winnings.Round(result.Winnings)),
	)
	return result, nil
}
