package handlers

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	apiContext "securepay/internal/api/context"
	"securepay/internal/engine/notifications"
	"securepay/internal/pkg/errors"
	"securepay/internal/platform/models"
)

// The provider expects exactly this body, otherwise it retries delivery.
const notificationAck = "OK"

const maxNotificationSize = 64 << 10

type NotificationVerifier interface {
	Verify(body []byte) (*models.Notification, error)
}

type NotificationStore interface {
	Record(ctx context.Context, n *models.Notification, raw []byte) (*models.StoredNotification, error)
	ListByOrderID(ctx context.Context, orderID string) ([]*models.StoredNotification, error)
}

type NotificationHandler struct {
	verifier NotificationVerifier
	store    NotificationStore
	logger   zerolog.Logger
}

func NewNotificationHandler(verifier NotificationVerifier, store NotificationStore, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{verifier: verifier, store: store, logger: logger}
}

func (h *NotificationHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxNotificationSize+1))
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Could not read request body", nil)
		return
	}
	if len(body) > maxNotificationSize {
		errors.WriteError(w, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput, "Notification too large", nil)
		return
	}

	n, err := h.verifier.Verify(body)
	if err != nil {
		h.logger.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("rejected notification")

		message := "Invalid notification"
		switch {
		case stdErrors.Is(err, notifications.ErrMalformedNotification):
			message = "Malformed notification"
		case stdErrors.Is(err, notifications.ErrTerminalKeyMismatch):
			message = "Unknown terminal"
		case stdErrors.Is(err, notifications.ErrInvalidToken):
			message = "Invalid token"
		}
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidNotification, message, nil)
		return
	}

	stored, err := h.store.Record(r.Context(), n, body)
	if err != nil {
		h.logger.Error().Err(err).Str("order_id", n.OrderID).Msg("failed to store notification")
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to store notification", nil)
		return
	}

	h.logger.Info().
		Str("id", stored.ID).
		Str("order_id", n.OrderID).
		Str("payment_id", stored.PaymentID).
		Str("status", string(n.Status)).
		Msg("notification accepted")

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, notificationAck)
}

func (h *NotificationHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	orderID := params.ByName("order_id")
	if orderID == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "order_id is required", nil)
		return
	}

	records, err := h.store.ListByOrderID(r.Context(), orderID)
	if err != nil {
		h.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to list notifications")
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list notifications", nil)
		return
	}
	if len(records) == 0 {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "No notifications for order", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		OrderID       string                       `json:"order_id"`
		Notifications []*models.StoredNotification `json:"notifications"`
	}{
		OrderID:       orderID,
		Notifications: records,
	})
}
