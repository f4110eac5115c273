package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/fwojciec/docconv"
	"github.com/go-chi/chi/v5"
)

// ParamPrefix marks query keys that are passed to the transformation as
// parameters, with the prefix removed.
const ParamPrefix = "param_"

const usage = "usage: /convert?source=<url>&fname=<file name>[&token=<bearer token>][&mode=<mode>][&param_<name>=<value>...]"

// Handler exposes conversions over HTTP.
type Handler struct {
	router    chi.Router
	configs   docconv.ConfigService
	converter docconv.Converter
	logger    *slog.Logger
}

// NewHandler creates a Handler serving GET /convert and GET /healthz.
func NewHandler(configs docconv.ConfigService, converter docconv.Converter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{
		router:    chi.NewRouter(),
		configs:   configs,
		converter: converter,
		logger:    logger,
	}
	h.router.Get("/convert", h.handleConvert)
	h.router.Get("/healthz", h.handleHealth)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source, fname := q.Get("source"), q.Get("fname")
	if source == "" || fname == "" {
		http.Error(w, usage, http.StatusBadRequest)
		return
	}

	params := make(map[string]string)
	for key, values := range q {
		if name, ok := strings.CutPrefix(key, ParamPrefix); ok && len(values) > 0 {
			params[name] = values[0]
		}
	}

	cfg, err := h.configs.FindConfig(q.Get("mode"))
	if err != nil {
		h.error(w, r, err)
		return
	}

	req := &docconv.Request{
		Source: source,
		Token:  q.Get("token"),
		Config: cfg,
		Params: params,
	}

	var buf bytes.Buffer
	if err := h.converter.Convert(r.Context(), req, &buf); err != nil {
		h.error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(cfg.MediaType))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fname}))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("writing response", "source", source, "err", err)
	}
}

// error writes the status matching err and logs failures that are not the
// caller's fault.
func (h *Handler) error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("conversion failed",
			"url", r.URL.String(),
			"status", status,
			"err", err,
		)
	}

	msg := docconv.ErrorMessage(err)
	if status == http.StatusGatewayTimeout {
		msg = "conversion timed out"
	}
	http.Error(w, msg, status)
}

// StatusCode maps an error to an HTTP status.
func StatusCode(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch docconv.ErrorCode(err) {
	case docconv.EINVALID:
		return http.StatusBadRequest
	case docconv.ENOTFOUND:
		return http.StatusNotFound
	case docconv.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func contentType(mediaType string) string {
	if strings.Contains(mediaType, "charset=") {
		return mediaType
	}
	return mediaType + "; charset=utf-8"
}
