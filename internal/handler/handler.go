package handler

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/iurnickita/lottobtc/internal/drawdate"
	"github.com/iurnickita/lottobtc/internal/handler/config"
	"github.com/iurnickita/lottobtc/internal/logger"
	"github.com/iurnickita/lottobtc/internal/metrics"
	"github.com/iurnickita/lottobtc/internal/model"
	"github.com/iurnickita/lottobtc/internal/service"
	"github.com/iurnickita/lottobtc/internal/sink"
	"github.com/iurnickita/lottobtc/internal/winnings"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	msgInvalidDate = "Please enter a valid date and time."
	msgFetchFailed = "Fetching the bitcoin price failed, please try again later."
)

func Serve(cfg config.Config, service service.Service, zaplog *zap.Logger) error {
	h, err := newHandler(service, sink.NewTableSink(cfg.FailClass), zaplog)
	if err != nil {
		return err
	}
	router := h.newRouter()

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zaplog.Info("server starting", zap.String("addr", cfg.ServerAddr))
	return srv.ListenAndServe()
}

type handler struct {
	service   service.Service
	control   *service.Control
	table     *sink.TableSink
	templates *template.Template
	zaplog    *zap.Logger
	now       func() time.Time
}

func newHandler(svc service.Service, table *sink.TableSink, zaplog *zap.Logger) (*handler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &handler{
		service:   svc,
		control:   service.NewControl(svc, table, zaplog),
		table:     table,
		templates: templates,
		zaplog:    zaplog,
		now:       time.Now,
	}, nil
}

func (h *handler) newRouter() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", logger.RequestLogMdlw(h.GetIndex, h.zaplog))
	mux.HandleFunc("POST /calc", logger.RequestLogMdlw(h.PostCalc, h.zaplog))
	mux.HandleFunc("GET /api/winnings", logger.RequestLogMdlw(h.GetWinnings, h.zaplog))
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

type pageData struct {
	Datetime string
	Error    string
	Rows     []model.DisplayRow
}

func (h *handler) renderPage(w http.ResponseWriter, code int, data pageData) {
	data.Rows = h.table.Rows()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := h.templates.ExecuteTemplate(w, "page.html", data); err != nil {
		h.zaplog.Error("template rendering", zap.Error(err))
	}
}

func (h *handler) GetIndex(w http.ResponseWriter, r *http.Request) {
	now := h.now().In(h.service.Location())
	h.renderPage(w, http.StatusOK, pageData{Datetime: drawdate.ToDatetimeString(now)})
}

func (h *handler) PostCalc(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	raw := r.PostFormValue("datetime")

	_, err := h.control.Submit(r.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			h.renderPage(w, http.StatusBadRequest, pageData{Datetime: raw, Error: msgInvalidDate})
		case errors.Is(err, service.ErrFetchFailed):
			h.renderPage(w, http.StatusBadGateway, pageData{Datetime: raw, Error: msgFetchFailed})
		case errors.Is(err, service.ErrSuperseded):
			// результат покажет более новый запрос
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type GetWinningsJSONResponse struct {
	Input         string   `json:"input"`
	Draw          string   `json:"draw"`
	HistoricalEUR *float64 `json:"historical_eur"`
	CurrentEUR    *float64 `json:"current_eur"`
	Winnings      float64  `json:"winnings"`
	Display       string   `json:"display"`
	Success       bool     `json:"success"`
}

func (h *handler) GetWinnings(w http.ResponseWriter, r *http.Request) {
	input, err := drawdate.ParseDatetime(r.URL.Query().Get("datetime"), h.service.Location())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFetchFailed):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	responseJSON, err := json.Marshal(GetWinningsJSONResponse{
		Input:         drawdate.ToDatetimeString(result.Input),
		Draw:          drawdate.ToDatetimeString(result.Draw),
		HistoricalEUR: quoteOutput(result.Historical),
		CurrentEUR:    quoteOutput(result.Current),
		Winnings:      result.Winnings,
		Display:       winnings.FormatEUR(result.Winnings),
		Success:       winnings.IsSuccess(result.Winnings),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(responseJSON)
}

// неизвестная цена -> null
func quoteOutput(quote model.PriceQuote) *float64 {
	if !quote.Known {
		return nil
	}
	value := quote.Value
	return &value
}
