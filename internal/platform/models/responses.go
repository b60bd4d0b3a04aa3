package models

import "fmt"

// Response carries the fields every method returns.
type Response struct {
	TerminalKey string     `json:"TerminalKey"`
	Success     bool       `json:"Success"`
	ErrorCode   FlexString `json:"ErrorCode"`
	// Message is a short error description, Details a longer one.
	Message string `json:"Message,omitempty"`
	Details string `json:"Details,omitempty"`
}

// APIError is a failure reported by the provider in an otherwise well-formed
// response.
type APIError struct {
	Code    string
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("acquiring error %s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("acquiring error %s: %s", e.Code, e.Message)
}

// Err returns nil for successful responses and an *APIError otherwise.
func (r Response) Err() error {
	if r.Success {
		return nil
	}
	return &APIError{Code: string(r.ErrorCode), Message: r.Message, Details: r.Details}
}

type InitResponse struct {
	Response
	Amount    int64         `json:"Amount"`
	OrderID   string        `json:"OrderId"`
	Status    PaymentStatus `json:"Status"`
	PaymentID FlexString    `json:"PaymentId"`
	// PaymentURL is only returned to merchants without PCI DSS.
	PaymentURL string `json:"PaymentURL,omitempty"`
}

// Param is a key/value detail attached to installment payments.
type Param struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

type GetStateResponse struct {
	Response
	Amount    int64         `json:"Amount"`
	OrderID   string        `json:"OrderId"`
	Status    PaymentStatus `json:"Status"`
	PaymentID FlexString    `json:"PaymentId"`
	Params    []Param       `json:"Params,omitempty"`
}

// OrderPayment is one payment attempt made for an order.
type OrderPayment struct {
	PaymentID FlexString    `json:"PaymentId"`
	Amount    int64         `json:"Amount"`
	Status    PaymentStatus `json:"Status"`
	RRN       string        `json:"RRN,omitempty"`
	Success   bool          `json:"Success"`
	ErrorCode FlexString    `json:"ErrorCode"`
	Message   string        `json:"Message,omitempty"`
}

type CheckOrderResponse struct {
	Response
	OrderID  string         `json:"OrderId"`
	Payments []OrderPayment `json:"Payments"`
}

type ConfirmResponse struct {
	Response
	OrderID   string        `json:"OrderId"`
	Status    PaymentStatus `json:"Status"`
	PaymentID FlexString    `json:"PaymentId"`
	Params    []Param       `json:"Params,omitempty"`
}

type CancelResponse struct {
	Response
	OrderID           string        `json:"OrderId"`
	Status            PaymentStatus `json:"Status"`
	OriginalAmount    int64         `json:"OriginalAmount"`
	NewAmount         int64         `json:"NewAmount"`
	PaymentID         FlexString    `json:"PaymentId"`
	ExternalRequestID string        `json:"ExternalRequestId,omitempty"`
}
