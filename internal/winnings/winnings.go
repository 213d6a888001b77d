package winnings

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iurnickita/lottobtc/internal/model"
)

// Сумма вложения, EUR
const Basis = 100

var printer = message.NewPrinter(language.English)

// Стоимость вложения Basis по цене previous, пересчитанная по цене current.
// Неизвестная цена (или нулевая предыдущая) дает 0, результат всегда конечен.
func Calculate(previous, current model.PriceQuote) float64 {
	if !previous.Known || !current.Known {
		return 0
	}
	if previous.Value == 0 || !isFinite(previous.Value) || !isFinite(current.Value) {
		return 0
	}
	winnings := (current.Value / previous.Value) * Basis
	if !isFinite(winnings) {
		return 0
	}
	return winnings
}

func isFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

func IsSuccess(winnings float64) bool {
	return winnings >= Basis
}

// Округление до 2 знаков для вывода
func Round(value float64) string {
	// decimal не принимает Inf и NaN
	if !isFinite(value) {
		return strconv.FormatFloat(value, 'f', 2, 64)
	}
	return decimal.NewFromFloat(value).StringFixed(2)
}

func FormatEUR(value float64) string {
	if !isFinite(value) {
		return Round(value) + " €"
	}
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return printer.Sprintf("%.2f €", rounded)
}

// Цена для вывода: неизвестная печатается как undefined
func FormatQuote(quote model.PriceQuote) string {
	if !quote.Known {
		return "undefined"
	}
	return Round(quote.Value)
}
