package models

import (
	"encoding/json"

	"securepay/internal/engine/signing"
)

// Each request lists its own signable fields. TerminalKey is filled in by the
// client before signing and Token after it, so Token never takes part.

type InitRequest struct {
	TerminalKey string `json:"TerminalKey"`
	// Amount in kopecks.
	Amount      int64  `json:"Amount"`
	OrderID     string `json:"OrderId"`
	Description string `json:"Description,omitempty"`
	// CustomerKey is required when Recurrent is set.
	CustomerKey     string   `json:"CustomerKey,omitempty"`
	Recurrent       string   `json:"Recurrent,omitempty"`
	PayType         PayType  `json:"PayType,omitempty"`
	Language        Language `json:"Language,omitempty"`
	NotificationURL string   `json:"NotificationURL,omitempty"`
	SuccessURL      string   `json:"SuccessURL,omitempty"`
	FailURL         string   `json:"FailURL,omitempty"`
	// RedirectDueDate bounds the payment link lifetime, formatted as
	// 2016-08-31T12:28:00+03:00.
	RedirectDueDate string            `json:"RedirectDueDate,omitempty"`
	Data            map[string]string `json:"DATA,omitempty"`
	Receipt         Receipt           `json:"Receipt,omitempty"`
	Token           string            `json:"Token"`
}

func (r InitRequest) SigningFields() signing.Fields {
	return signing.Fields{}.
		SetString("TerminalKey", r.TerminalKey).
		SetInt("Amount", r.Amount).
		SetString("OrderId", r.OrderID).
		SetOptString("Description", r.Description).
		SetOptString("CustomerKey", r.CustomerKey).
		SetOptString("Recurrent", r.Recurrent).
		SetOptString("PayType", string(r.PayType)).
		SetOptString("Language", string(r.Language)).
		SetOptString("NotificationURL", r.NotificationURL).
		SetOptString("SuccessURL", r.SuccessURL).
		SetOptString("FailURL", r.FailURL).
		SetOptString("RedirectDueDate", r.RedirectDueDate)
}

func (r *InitRequest) UnmarshalJSON(data []byte) error {
	type plain InitRequest
	aux := struct {
		*plain
		Receipt json.RawMessage `json:"Receipt,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return decodeReceiptInto(aux.Receipt, &r.Receipt)
}

type GetStateRequest struct {
	TerminalKey string `json:"TerminalKey"`
	PaymentID   string `json:"PaymentId"`
	// IP of the customer.
	IP    string `json:"IP,omitempty"`
	Token string `json:"Token"`
}

func (r GetStateRequest) SigningFields() signing.Fields {
	return signing.Fields{}.
		SetString("TerminalKey", r.TerminalKey).
		SetString("PaymentId", r.PaymentID).
		SetOptString("IP", r.IP)
}

type CheckOrderRequest struct {
	TerminalKey string `json:"TerminalKey"`
	OrderID     string `json:"OrderId"`
	Token       string `json:"Token"`
}

func (r CheckOrderRequest) SigningFields() signing.Fields {
	return signing.Fields{}.
		SetString("TerminalKey", r.TerminalKey).
		SetString("OrderId", r.OrderID)
}

type Shop struct {
	ShopCode string `json:"ShopCode"`
	Amount   int64  `json:"Amount"`
	Name     string `json:"Name,omitempty"`
	Fee      int64  `json:"Fee,omitempty"`
}

type ConfirmRequest struct {
	TerminalKey string `json:"TerminalKey"`
	PaymentID   string `json:"PaymentId"`
	IP          string `json:"IP,omitempty"`
	// Amount to confirm in kopecks. Zero confirms the full authorized amount.
	Amount  int64   `json:"Amount,omitempty"`
	Receipt Receipt `json:"Receipt,omitempty"`
	Shops   []Shop  `json:"Shops,omitempty"`
	// Route and Source are TCB/installment for installments and BNPL/BNPL
	// for split payments.
	Route  PaymentRoute  `json:"Route,omitempty"`
	Source PaymentSource `json:"Source,omitempty"`
	Token  string        `json:"Token"`
}

func (r ConfirmRequest) SigningFields() signing.Fields {
	return signing.Fields{}.
		SetString("TerminalKey", r.TerminalKey).
		SetString("PaymentId", r.PaymentID).
		SetOptString("IP", r.IP).
		SetOptInt("Amount", r.Amount).
		SetOptString("Route", string(r.Route)).
		SetOptString("Source", string(r.Source))
}

func (r *ConfirmRequest) UnmarshalJSON(data []byte) error {
	type plain ConfirmRequest
	aux := struct {
		*plain
		Receipt json.RawMessage `json:"Receipt,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return decodeReceiptInto(aux.Receipt, &r.Receipt)
}

// CancelRequest moves a payment along NEW -> CANCELED, AUTHORIZED ->
// (PARTIAL_)REVERSED or CONFIRMED -> (PARTIAL_)REFUNDED depending on its
// state and Amount.
type CancelRequest struct {
	TerminalKey string `json:"TerminalKey"`
	PaymentID   string `json:"PaymentId"`
	IP          string `json:"IP,omitempty"`
	// Amount to return in kopecks. Zero cancels the full amount.
	Amount  int64   `json:"Amount,omitempty"`
	Receipt Receipt `json:"Receipt,omitempty"`
	Shops   []Shop  `json:"Shops,omitempty"`
	// QrMemberID is the SBP bank code to refund to.
	QrMemberID string        `json:"QrMemberId,omitempty"`
	Route      PaymentRoute  `json:"Route,omitempty"`
	Source     PaymentSource `json:"Source,omitempty"`
	// ExternalRequestID makes the refund idempotent on the provider side.
	ExternalRequestID string `json:"ExternalRequestId,omitempty"`
	Token             string `json:"Token"`
}

func (r CancelRequest) SigningFields() signing.Fields {
	return signing.Fields{}.
		SetString("TerminalKey", r.TerminalKey).
		SetString("PaymentId", r.PaymentID).
		SetOptString("IP", r.IP).
		SetOptInt("Amount", r.Amount).
		SetOptString("QrMemberId", r.QrMemberID).
		SetOptString("Route", string(r.Route)).
		SetOptString("Source", string(r.Source)).
		SetOptString("ExternalRequestId", r.ExternalRequestID)
}

func (r *CancelRequest) UnmarshalJSON(data []byte) error {
	type plain CancelRequest
	aux := struct {
		*plain
		Receipt json.RawMessage `json:"Receipt,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return decodeReceiptInto(aux.Receipt, &r.Receipt)
}

func decodeReceiptInto(raw json.RawMessage, dst *Receipt) error {
	receipt, err := DecodeReceipt(raw)
	if err != nil {
		return err
	}
	*dst = receipt
	return nil
}
