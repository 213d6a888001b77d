package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/iurnickita/lottobtc/internal/drawdate"
	"github.com/iurnickita/lottobtc/internal/metrics"
	"github.com/iurnickita/lottobtc/internal/model"
	"github.com/iurnickita/lottobtc/internal/sink"
	"github.com/iurnickita/lottobtc/internal/winnings"
)

// Control связывает поле ввода с выводом результата.
// Новый запрос отменяет незавершенный предыдущий; в вывод попадает
// только результат последнего запроса.
type Control struct {
	service Service
	sink    sink.Sink
	zaplog  *zap.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewControl(service Service, sink sink.Sink, zaplog *zap.Logger) *Control {
	return &Control{
		service: service,
		sink:    sink,
		zaplog:  zaplog,
	}
}

func (c *Control) Submit(ctx context.Context, raw string) (model.Result, error) {
	// невалидная дата: без сетевых запросов
	input, err := drawdate.ParseDatetime(raw, c.service.Location())
	if err != nil {
		metrics.RecordRun(metrics.OutcomeInvalid)
		return model.Result{}, err
	}

	runCtx, seq := c.begin(ctx)
	result, err := c.service.Calculate(runCtx, input)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		metrics.RecordRun(metrics.OutcomeSuperseded)
		c.zaplog.Info("calculation superseded", zap.String("input", raw))
		return model.Result{}, ErrSuperseded
	}
	c.cancel()
	c.cancel = nil

	if err != nil {
		metrics.RecordRun(metrics.OutcomeError)
		c.zaplog.Error("calculation failed", zap.String("input", raw), zap.Error(err))
		return model.Result{}, err
	}

	if err := c.sink.Render(result); err != nil {
		return model.Result{}, err
	}
	if winnings.IsSuccess(result.Winnings) {
		metrics.RecordRun(metrics.OutcomeSuccess)
	} else {
		metrics.RecordRun(metrics.OutcomeFailure)
	}
	return result, nil
}

func (c *Control) begin(ctx context.Context) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.seq++
	return runCtx, c.seq
}
