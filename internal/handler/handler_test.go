package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iurnickita/lottobtc/internal/drawdate"
	"github.com/iurnickita/lottobtc/internal/model"
	"github.com/iurnickita/lottobtc/internal/service"
	"github.com/iurnickita/lottobtc/internal/sink"
	"github.com/iurnickita/lottobtc/internal/winnings"
)

type fakeService struct {
	historical model.PriceQuote
	current    model.PriceQuote
	err        error
	calls      int
}

func (f *fakeService) Location() *time.Location {
	return time.UTC
}

func (f *fakeService) Calculate(_ context.Context, input time.Time) (model.Result, error) {
	f.calls++
	if f.err != nil {
		return model.Result{}, f.err
	}
	return model.Result{
		Input:      input,
		Draw:       drawdate.NextDraw(input),
		Historical: f.historical,
		Current:    f.current,
		Winnings:   winnings.Calculate(f.historical, f.current),
	}, nil
}

func newTestRouter(t *testing.T, svc *fakeService, failClass string) (*handler, http.Handler) {
	t.Helper()
	h, err := newHandler(svc, sink.NewTableSink(failClass), zap.NewNop())
	require.NoError(t, err)
	h.now = func() time.Time { return time.Date(2024, time.March, 4, 9, 5, 0, 0, time.UTC) }
	return h, h.newRouter()
}

func postCalc(router http.Handler, datetime string) *httptest.ResponseRecorder {
	form := url.Values{"datetime": {datetime}}
	req := httptest.NewRequest(http.MethodPost, "/calc", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetIndex(t *testing.T) {
	_, router := newTestRouter(t, &fakeService{}, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="2024-03-04T09:05"`)
	assert.Contains(t, body, sink.PlaceholderText)
}

func TestPostCalc(t *testing.T) {
	svc := &fakeService{historical: model.KnownPrice(60000), current: model.KnownPrice(66000)}
	h, router := newTestRouter(t, svc, "")

	rec := postCalc(router, "2024-03-04T10:00")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	rows := h.table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, model.DisplayRow{Draw: "06-03-2024 20:00", Winnings: "110.00 €", Class: model.RowClassSuccess}, rows[0])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()
	assert.NotContains(t, body, sink.PlaceholderText)
	assert.Contains(t, body, `<tr class="success"><td>06-03-2024 20:00</td><td>110.00 €</td></tr>`)
}

func TestPostCalcUnknownPrice(t *testing.T) {
	svc := &fakeService{historical: model.UnknownPrice, current: model.KnownPrice(66000)}
	h, router := newTestRouter(t, svc, model.RowClassFail)

	rec := postCalc(router, "2024-03-04T10:00")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, model.DisplayRow{Draw: "06-03-2024 20:00", Winnings: "0.00 €", Class: model.RowClassFail}, h.table.Rows()[0])
}

func TestPostCalcInvalidDate(t *testing.T) {
	svc := &fakeService{}
	h, router := newTestRouter(t, svc, "")

	rec := postCalc(router, "next wednesday")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidDate)
	assert.Equal(t, 0, svc.calls)
	assert.False(t, h.table.HasRows())
}

func TestPostCalcFetchFailed(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: connection refused", service.ErrFetchFailed)}
	h, router := newTestRouter(t, svc, "")

	rec := postCalc(router, "2024-03-04T10:00")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), msgFetchFailed)
	assert.False(t, h.table.HasRows())
}

func TestGetWinnings(t *testing.T) {
	svc := &fakeService{historical: model.UnknownPrice, current: model.KnownPrice(66000)}
	h, router := newTestRouter(t, svc, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/winnings?datetime=2024-03-04T10:00", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp GetWinningsJSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-03-06T20:00", resp.Draw)
	assert.Nil(t, resp.HistoricalEUR)
	require.NotNil(t, resp.CurrentEUR)
	assert.Equal(t, 66000.0, *resp.CurrentEUR)
	assert.Equal(t, 0.0, resp.Winnings)
	assert.False(t, resp.Success)

	// API не добавляет строки в таблицу
	assert.False(t, h.table.HasRows())
}

func TestGetWinningsErrors(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: timeout", service.ErrFetchFailed)}
	_, router := newTestRouter(t, svc, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/winnings?datetime=", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/winnings?datetime=2024-03-04T10:00", nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	_, router := newTestRouter(t, &fakeService{}, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
