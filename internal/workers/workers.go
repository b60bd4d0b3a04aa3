package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"securepay/internal/platform/models"
)

type StateFetcher interface {
	GetState(ctx context.Context, req models.GetStateRequest) (*models.GetStateResponse, error)
}

type PaymentStore interface {
	LatestByPayment(ctx context.Context) ([]*models.StoredNotification, error)
	Save(ctx context.Context, n *models.StoredNotification) error
}

type SyncResult struct {
	Checked int
	Updated int
	Failed  int
}

// StatusSync polls GetState for payments whose last known status is not
// final, so missed notifications do not leave them stuck.
type StatusSync struct {
	client StateFetcher
	store  PaymentStore
	logger zerolog.Logger
}

func NewStatusSync(client StateFetcher, store PaymentStore, logger zerolog.Logger) *StatusSync {
	return &StatusSync{client: client, store: store, logger: logger}
}

// Run performs one sync pass. A failing payment is logged and counted, the
// pass goes on with the rest.
func (s *StatusSync) Run(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	latest, err := s.store.LatestByPayment(ctx)
	if err != nil {
		return result, fmt.Errorf("list payments: %w", err)
	}

	for _, last := range latest {
		if last.PaymentID == "" || last.Status.IsFinal() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Checked++
		updated, err := s.syncPayment(ctx, last)
		if err != nil {
			result.Failed++
			s.logger.Warn().Err(err).Str("payment_id", last.PaymentID).Msg("state sync failed")
			continue
		}
		if updated {
			result.Updated++
		}
	}

	return result, nil
}

func (s *StatusSync) syncPayment(ctx context.Context, last *models.StoredNotification) (bool, error) {
	resp, err := s.client.GetState(ctx, models.GetStateRequest{PaymentID: last.PaymentID})
	if err != nil {
		return false, err
	}
	if err := resp.Err(); err != nil {
		return false, err
	}
	if resp.Status == last.Status {
		return false, nil
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		return false, err
	}

	orderID := resp.OrderID
	if orderID == "" {
		orderID = last.OrderID
	}

	record := &models.StoredNotification{
		Source:    models.RecordSourcePoll,
		OrderID:   orderID,
		PaymentID: last.PaymentID,
		Status:    resp.Status,
		Success:   resp.Success,
		Amount:    resp.Amount,
		ErrorCode: resp.ErrorCode.String(),
		Payload:   payload,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return false, fmt.Errorf("save poll record: %w", err)
	}

	s.logger.Info().
		Str("payment_id", last.PaymentID).
		Str("from", string(last.Status)).
		Str("to", string(resp.Status)).
		Msg("payment status changed")
	return true, nil
}

// RunEvery runs a pass immediately and then on every tick until ctx is done.
func (s *StatusSync) RunEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := s.Run(ctx)
		if err != nil && ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("state sync pass failed")
		} else if err == nil {
			s.logger.Debug().
				Int("checked", result.Checked).
				Int("updated", result.Updated).
				Int("failed", result.Failed).
				Msg("state sync pass done")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
