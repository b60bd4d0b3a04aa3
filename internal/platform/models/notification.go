package models

import "encoding/json"

// Notification is the payload the provider POSTs to NotificationURL when a
// payment changes state.
type Notification struct {
	TerminalKey string            `json:"TerminalKey"`
	OrderID     string            `json:"OrderId"`
	Success     bool              `json:"Success"`
	Status      PaymentStatus     `json:"Status"`
	PaymentID   FlexString        `json:"PaymentId"`
	ErrorCode   FlexString        `json:"ErrorCode"`
	Amount      int64             `json:"Amount"`
	CardID      FlexString        `json:"CardId,omitempty"`
	Pan         string            `json:"Pan,omitempty"`
	ExpDate     string            `json:"ExpDate,omitempty"`
	RebillID    FlexString        `json:"RebillId,omitempty"`
	Data        map[string]string `json:"DATA,omitempty"`
	Token       string            `json:"Token"`
}

const (
	RecordSourceNotification = "notification"
	RecordSourcePoll         = "poll"
)

// StoredNotification is a verified notification, or a polled state, as kept
// by the notification store.
type StoredNotification struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	ReceivedAt int64           `json:"received_at"`
	OrderID    string          `json:"order_id"`
	PaymentID  string          `json:"payment_id"`
	Status     PaymentStatus   `json:"status"`
	Success    bool            `json:"success"`
	Amount     int64           `json:"amount"`
	ErrorCode  string          `json:"error_code,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}
