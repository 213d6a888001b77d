package sink

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/olekukonko/tablewriter"

	"github.com/iurnickita/lottobtc/internal/drawdate"
	"github.com/iurnickita/lottobtc/internal/model"
	"github.com/iurnickita/lottobtc/internal/winnings"
)

const PlaceholderText = "No results yet"

var placeholderRow = model.DisplayRow{Draw: PlaceholderText, Placeholder: true}

var ErrFailClass = errors.New("fail class must be failure or fail")

// Допустимые классы строки с проигрышем: failure или fail
func CheckFailClass(class string) error {
	switch class {
	case model.RowClassFailure, model.RowClassFail:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrFailClass, class)
	}
}

// TableSink накапливает строки результатов. До первой вставки таблица
// содержит строку-заглушку, первая вставка ее удаляет.
type TableSink struct {
	mu        sync.RWMutex
	failClass string
	rows      []model.DisplayRow
	hasRows   bool
}

func NewTableSink(failClass string) *TableSink {
	if CheckFailClass(failClass) != nil {
		failClass = model.RowClassFailure
	}
	return &TableSink{
		failClass: failClass,
		rows:      []model.DisplayRow{placeholderRow},
	}
}

func NewDisplayRow(result model.Result, failClass string) model.DisplayRow {
	class := failClass
	if winnings.IsSuccess(result.Winnings) {
		class = model.RowClassSuccess
	}
	return model.DisplayRow{
		Draw:     drawdate.ToLocaleString(result.Draw),
		Winnings: winnings.FormatEUR(result.Winnings),
		Class:    class,
	}
}

func (s *TableSink) Render(result model.Result) error {
	row := NewDisplayRow(result, s.failClass)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasRows {
		s.rows = s.rows[:0]
		s.hasRows = true
	}
	s.rows = append(s.rows, row)
	return nil
}

func (s *TableSink) HasRows() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasRows
}

// Копия текущих строк (включая заглушку)
func (s *TableSink) Rows() []model.DisplayRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]model.DisplayRow, len(s.rows))
	copy(rows, s.rows)
	return rows
}

// Вывод таблицы в терминал
func (s *TableSink) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Draw", "Winnings", "Result"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range s.Rows() {
		table.Append([]string{row.Draw, row.Winnings, row.Class})
	}
	table.Render()
}
