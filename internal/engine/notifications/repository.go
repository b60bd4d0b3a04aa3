package notifications

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"securepay/internal/platform/models"
)

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

const selectColumns = `id, source, order_id, payment_id, status, success, amount, error_code, payload, received_at`

func (r *Repository) Save(ctx context.Context, n *models.StoredNotification) error {
	if n.ID == "" {
		n.ID = "ntf_" + uuid.New().String()
	}
	if n.ReceivedAt == 0 {
		n.ReceivedAt = r.now().UnixMilli()
	}

	query := `
		INSERT INTO notifications (` + selectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.Source,
		n.OrderID,
		n.PaymentID,
		string(n.Status),
		n.Success,
		n.Amount,
		n.ErrorCode,
		string(n.Payload),
		n.ReceivedAt,
	)
	return err
}

// Record stores a verified notification together with its raw body.
func (r *Repository) Record(ctx context.Context, n *models.Notification, raw []byte) (*models.StoredNotification, error) {
	stored := &models.StoredNotification{
		Source:    models.RecordSourceNotification,
		OrderID:   n.OrderID,
		PaymentID: n.PaymentID.String(),
		Status:    n.Status,
		Success:   n.Success,
		Amount:    n.Amount,
		ErrorCode: n.ErrorCode.String(),
		Payload:   raw,
	}
	if err := r.Save(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *Repository) ListByOrderID(ctx context.Context, orderID string) ([]*models.StoredNotification, error) {
	query := `SELECT ` + selectColumns + ` FROM notifications WHERE order_id = ? ORDER BY received_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAll(rows)
}

// LatestByPayment returns the most recent record of every known payment.
func (r *Repository) LatestByPayment(ctx context.Context) ([]*models.StoredNotification, error) {
	query := `
		SELECT ` + selectColumns + ` FROM notifications n
		WHERE n.rowid = (
			SELECT m.rowid FROM notifications m
			WHERE m.payment_id = n.payment_id
			ORDER BY m.received_at DESC, m.rowid DESC
			LIMIT 1
		)
		ORDER BY n.payment_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAll(rows)
}

func scanAll(rows *sql.Rows) ([]*models.StoredNotification, error) {
	var result []*models.StoredNotification
	for rows.Next() {
		var n models.StoredNotification
		var status string
		var errorCode, payload sql.NullString

		err := rows.Scan(&n.ID, &n.Source, &n.OrderID, &n.PaymentID, &status, &n.Success, &n.Amount, &errorCode, &payload, &n.ReceivedAt)
		if err != nil {
			return nil, err
		}

		n.Status = models.PaymentStatus(status)
		if errorCode.Valid {
			n.ErrorCode = errorCode.String
		}
		if payload.Valid && payload.String != "" {
			n.Payload = []byte(payload.String)
		}
		result = append(result, &n)
	}
	return result, rows.Err()
}
