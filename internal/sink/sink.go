package sink

import (
	"fmt"
	"io"

	"github.com/iurnickita/lottobtc/internal/drawdate"
	"github.com/iurnickita/lottobtc/internal/model"
	"github.com/iurnickita/lottobtc/internal/winnings"
)

// Sink выводит один результат расчета
type Sink interface {
	Render(result model.Result) error
}

// Вывод одной строкой в консоль
type ConsoleSink struct {
	w io.Writer
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// дата ввода, дата розыгрыша, цена на дату, текущая цена, выигрыш
func (s *ConsoleSink) Render(result model.Result) error {
	_, err := fmt.Fprintln(s.w,
		drawdate.ToDateString(result.Input),
		drawdate.ToDateString(result.Draw),
		winnings.FormatQuote(result.Historical),
		winnings.FormatQuote(result.Current),
		winnings.Round(result.Winnings),
	)
	return err
}
