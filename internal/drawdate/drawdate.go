package drawdate

import (
	"errors"
	"strings"
	"time"
)

const (
	DatetimeLayout = "2006-01-02T15:04"
	DateLayout     = "02-01-2006"
	LocaleLayout   = "02-01-2006 15:04"

	datetimeSecondsLayout = "2006-01-02T15:04:05"

	// Час розыгрыша (местное время)
	DrawHour = 20
)

var ErrInvalidDate = errors.New("invalid date")

// Формат поля datetime-local
func ToDatetimeString(t time.Time) string {
	return t.Format(DatetimeLayout)
}

// Формат даты для запроса истории цен
func ToDateString(t time.Time) string {
	return t.Format(DateLayout)
}

func ToLocaleString(t time.Time) string {
	return t.Format(LocaleLayout)
}

// Разбор значения поля datetime-local
func ParseDatetime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DatetimeLayout, datetimeSecondsLayout} {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func ParseDateString(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Ближайший розыгрыш (среда или суббота, 20:00):
//
//	вс, пн, вт        -> среда той же недели
//	чт, пт            -> суббота той же недели
//	ср с 20:00        -> суббота (+3 дня)
//	сб с 20:00        -> следующая среда (+4 дня)
//	ср, сб до 20:00   -> тот же день
func NextDraw(t time.Time) time.Time {
	days := 0
	weekday := t.Weekday()
	switch {
	case weekday < time.Wednesday:
		days = int(time.Wednesday - weekday)
	case weekday == time.Thursday || weekday == time.Friday:
		days = int(time.Saturday - weekday)
	case weekday == time.Wednesday && t.Hour() >= DrawHour:
		days = 3
	case weekday == time.Saturday && t.Hour() >= DrawHour:
		days = 4
	}

	// сдвиг по календарю, чтобы при переходе на летнее время осталось 20:00
	year, month, day := t.Date()
	return time.Date(year, month, day+days, DrawHour, 0, 0, 0, t.Location())
}
