package geckoclient

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/iurnickita/lottobtc/internal/drawdate"
	"github.com/iurnickita/lottobtc/internal/metrics"
	"github.com/iurnickita/lottobtc/internal/model"
)

const (
	DefaultAddr = "https://api.coingecko.com/api"

	pathCurrent = "v3/coins/bitcoin"
	pathHistory = "v3/coins/bitcoin/history"

	// Путь к цене в EUR в ответе coins/{id} и coins/{id}/history
	priceEURPath = "market_data.current_price.eur"

	endpointCurrent = "current"
	endpointHistory = "history"
)

// Сетевая ошибка или ответ не в формате JSON.
// Отсутствие цены в ответе ошибкой не считается.
var ErrFetchFailed = errors.New("fetch failed")

type GeckoClient interface {
	FetchAtDate(ctx context.Context, datetime time.Time) (model.PriceQuote, error)
	FetchCurrent(ctx context.Context) (model.PriceQuote, error)
}

type geckoClient struct {
	client *resty.Client
	zaplog *zap.Logger
}

func NewGeckoClient(serviceAddr string, timeout time.Duration, zaplog *zap.Logger) GeckoClient {
	if serviceAddr == "" {
		serviceAddr = DefaultAddr
	}
	client := resty.New().SetBaseURL(serviceAddr)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &geckoClient{client: client, zaplog: zaplog}
}

// Цена биткоина на дату розыгрыша
func (c *geckoClient) FetchAtDate(ctx context.Context, datetime time.Time) (model.PriceQuote, error) {
	query := map[string]string{"date": drawdate.ToDateString(datetime)}
	return c.fetchPrice(ctx, endpointHistory, pathHistory, query)
}

// Текущая цена биткоина
func (c *geckoClient) FetchCurrent(ctx context.Context) (model.PriceQuote, error) {
	return c.fetchPrice(ctx, endpointCurrent, pathCurrent, nil)
}

func (c *geckoClient) fetchPrice(ctx context.Context, endpoint, path string, query map[string]string) (model.PriceQuote, error) {
	start := time.Now()
	body, err := c.fetchGeckoAPI(ctx, path, query)
	if err != nil {
		metrics.RecordGeckoRequest(endpoint, metrics.OutcomeError, time.Since(start).Seconds())
		return model.UnknownPrice, err
	}

	quote := extractPriceEUR(body)
	outcome := metrics.OutcomeOK
	if !quote.Known {
		outcome = metrics.OutcomeUnknown
		c.zaplog.Info("price missing in gecko response", zap.String("endpoint", endpoint))
	}
	metrics.RecordGeckoRequest(endpoint, outcome, time.Since(start).Seconds())
	return quote, nil
}

func (c *geckoClient) fetchGeckoAPI(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	setreq := c.client.R().SetContext(ctx)
	if query != nil {
		setreq.SetQueryParams(query)
	}
	setreq.Method = http.MethodGet
	setreq.URL = path
	setresp, err := setreq.Send()
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrFetchFailed, path, err)
	}

	// статус не проверяем: тело ошибки тоже JSON, цены в нем просто нет
	if setresp.IsError() {
		c.zaplog.Warn("gecko request status",
			zap.String("path", path),
			zap.Int("code", setresp.StatusCode()),
		)
	}

	body := setresp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: GET %s: response is not JSON", ErrFetchFailed, path)
	}
	return body, nil
}

func extractPriceEUR(body []byte) model.PriceQuote {
	price := gjson.GetBytes(body, priceEURPath)
	if price.Type != gjson.Number {
		return model.UnknownPrice
	}
	// 1e400 и подобные разбираются как Inf
	value := price.Float()
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return model.UnknownPrice
	}
	return model.KnownPrice(value)
}
