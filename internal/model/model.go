package model

import (
	"time"

	"github.com/google/uuid"
)

// Цена биткоина

// Цена в EUR; нулевое значение структуры - цена неизвестна
type PriceQuote struct {
	Value float64
	Known bool
}

var UnknownPrice = PriceQuote{}

func KnownPrice(value float64) PriceQuote {
	return PriceQuote{Value: value, Known: true}
}

// Результат расчета

type Result struct {
	RunID      uuid.UUID
	Input      time.Time
	Draw       time.Time
	Historical PriceQuote
	Current    PriceQuote
	Winnings   float64
}

// Строка таблицы результатов

type DisplayRow struct {
	Draw        string
	Winnings    string
	Class       string
	Placeholder bool
}

const (
	RowClassSuccess = "success"
	RowClassFailure = "failure"
	RowClassFail    = "fail"
)
