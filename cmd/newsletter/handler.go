package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/newsletter/core/broadcast"
	"github.com/dmitrymomot/newsletter/core/subscriber"
	"github.com/dmitrymomot/newsletter/core/subscription"
	"github.com/dmitrymomot/newsletter/integration/database/pg"
)

const healthcheckTimeout = 5 * time.Second

// handler is the thin HTTP shell over the domain services. All decisions
// live below it; the shell only translates requests and maps errors to
// status codes.
type handler struct {
	subscriptions *subscription.Service
	broadcaster   *broadcast.Broadcaster
	db            *pg.Manager
	log           *slog.Logger
}

func newHandler(subscriptions *subscription.Service, broadcaster *broadcast.Broadcaster, db *pg.Manager, log *slog.Logger) http.Handler {
	h := &handler{
		subscriptions: subscriptions,
		broadcaster:   broadcaster,
		db:            db,
		log:           log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /subscriptions", h.subscribe)
	mux.HandleFunc("GET /subscriptions/confirm", h.confirm)
	mux.HandleFunc("POST /newsletters", h.publish)
	mux.HandleFunc("GET /healthz", h.healthz)
	return mux
}

func (h *handler) subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	err := h.subscriptions.Subscribe(r.Context(), r.PostFormValue("name"), r.PostFormValue("email"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case isValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, subscription.ErrDuplicateSubscriber):
		http.Error(w, "email is already subscribed", http.StatusConflict)
	default:
		h.log.ErrorContext(r.Context(), "subscribe failed", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *handler) confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	// Unknown and spent tokens confirm "successfully" on purpose; the
	// response must not disclose whether the token ever existed.
	if err := h.subscriptions.Confirm(r.Context(), token); err != nil {
		h.log.ErrorContext(r.Context(), "confirm failed", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type publishRequest struct {
	Title   string `json:"title"`
	Content struct {
		HTML string `json:"html"`
		Text string `json:"text"`
	} `json:"content"`
}

type publishResponse struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

func (h *handler) publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.broadcaster.Publish(r.Context(), r.Header.Get("Authorization"), broadcast.Newsletter{
		Title: req.Title,
		HTML:  req.Content.HTML,
		Text:  req.Content.Text,
	})
	switch {
	case errors.Is(err, broadcast.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", `Basic realm="publish"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	case errors.Is(err, broadcast.ErrInvalidNewsletter):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "publish failed", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(publishResponse{
		Attempted: report.Attempted,
		Delivered: report.Delivered,
		Failed:    len(report.Failures),
	})
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
	defer cancel()

	if err := h.db.Healthcheck(ctx); err != nil {
		h.log.ErrorContext(r.Context(), "healthcheck failed", slog.Any("error", err))
		http.Error(w, "unhealthy", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func isValidationError(err error) bool {
	return errors.Is(err, subscriber.ErrEmptyName) ||
		errors.Is(err, subscriber.ErrNameTooLong) ||
		errors.Is(err, subscriber.ErrForbiddenCharacters) ||
		errors.Is(err, subscriber.ErrInvalidEmail)
}
