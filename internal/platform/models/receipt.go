package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type FfdVersion string

const (
	FFD105 FfdVersion = "1.05"
	FFD12  FfdVersion = "1.2"
)

var ErrUnknownFfdVersion = errors.New("unknown FfdVersion")

// Receipt is fiscal data attached to a payment. The two fiscal data format
// revisions have incompatible item shapes, so they stay separate types:
// ReceiptFFD105 and ReceiptFFD12.
type Receipt interface {
	FfdVersion() FfdVersion
}

// ReceiptFFD105 is the legacy flat receipt. One of Email or Phone is required.
type ReceiptFFD105 struct {
	Items    []ItemFFD105 `json:"Items"`
	Taxation Taxation     `json:"Taxation"`
	Payments *Payments    `json:"Payments,omitempty"`
	Email    string       `json:"Email,omitempty"`
	Phone    string       `json:"Phone,omitempty"`
}

func (ReceiptFFD105) FfdVersion() FfdVersion { return FFD105 }

func (r ReceiptFFD105) MarshalJSON() ([]byte, error) {
	type plain ReceiptFFD105
	return json.Marshal(struct {
		FfdVersion FfdVersion `json:"FfdVersion"`
		plain
	}{FFD105, plain(r)})
}

type ItemFFD105 struct {
	Name string `json:"Name"`
	// Price per unit, in kopecks.
	Price    int64   `json:"Price"`
	Quantity float64 `json:"Quantity"`
	// Amount is Price * Quantity, in kopecks.
	Amount        int64         `json:"Amount"`
	PaymentMethod PaymentMethod `json:"PaymentMethod,omitempty"`
	PaymentObject PaymentObject `json:"PaymentObject,omitempty"`
	Tax           Tax           `json:"Tax"`
	Ean13         string        `json:"Ean13,omitempty"`
	ShopCode      string        `json:"ShopCode,omitempty"`
	AgentData     *AgentData    `json:"AgentData,omitempty"`
	SupplierInfo  *SupplierInfo `json:"SupplierInfo,omitempty"`
}

// ReceiptFFD12 follows fiscal data format 1.2.
type ReceiptFFD12 struct {
	Taxation             Taxation             `json:"Taxation"`
	Items                []ItemFFD12          `json:"Items"`
	Payments             *Payments            `json:"Payments,omitempty"`
	Email                string               `json:"Email,omitempty"`
	Phone                string               `json:"Phone,omitempty"`
	ClientInfo           *ClientInfo          `json:"ClientInfo,omitempty"`
	Customer             string               `json:"Customer,omitempty"`
	CustomerInn          string               `json:"CustomerInn,omitempty"`
	OperatingCheckProps  *OperatingCheckProps `json:"OperatingCheckProps,omitempty"`
	SectoralCheckProps   *SectoralCheckProps  `json:"SectoralCheckProps,omitempty"`
	AddUserProp          *AddUserProp         `json:"AddUserProp,omitempty"`
	AdditionalCheckProps json.RawMessage      `json:"AdditionalCheckProps,omitempty"`
}

func (ReceiptFFD12) FfdVersion() FfdVersion { return FFD12 }

func (r ReceiptFFD12) MarshalJSON() ([]byte, error) {
	type plain ReceiptFFD12
	return json.Marshal(struct {
		FfdVersion FfdVersion `json:"FfdVersion"`
		plain
	}{FFD12, plain(r)})
}

type ItemFFD12 struct {
	Name string `json:"Name"`
	// Price per unit, in kopecks.
	Price int64 `json:"Price"`
	// Quantity allows up to 5 integer and 3 fractional digits. Must be 1 when
	// MarkCode is set.
	Quantity           float64             `json:"Quantity"`
	Amount             int64               `json:"Amount"`
	PaymentMethod      PaymentMethod       `json:"PaymentMethod"`
	PaymentObject      PaymentObject       `json:"PaymentObject"`
	UserData           string              `json:"UserData,omitempty"`
	Excise             float64             `json:"Excise,omitempty"`
	CountryCode        string              `json:"CountryCode,omitempty"`
	DeclarationNumber  string              `json:"DeclarationNumber,omitempty"`
	MeasurementUnit    MeasurementUnit     `json:"MeasurementUnit"`
	MarkProcessingMode string              `json:"MarkProcessingMode,omitempty"`
	MarkCode           *MarkCode           `json:"MarkCode,omitempty"`
	MarkQuantity       *MarkQuantity       `json:"MarkQuantity,omitempty"`
	SectoralItemProps  []SectoralItemProps `json:"SectoralItemProps,omitempty"`
	Tax                Tax                 `json:"Tax"`
	AgentData          *AgentData          `json:"AgentData,omitempty"`
	SupplierInfo       *SupplierInfo       `json:"SupplierInfo,omitempty"`
}

// Payments splits the receipt total by payment kind, in kopecks.
type Payments struct {
	Cash           int64 `json:"Cash,omitempty"`
	Electronic     int64 `json:"Electronic,omitempty"`
	AdvancePayment int64 `json:"AdvancePayment,omitempty"`
	Credit         int64 `json:"Credit,omitempty"`
	Provision      int64 `json:"Provision,omitempty"`
}

type AgentData struct {
	AgentSign       AgentSign          `json:"AgentSign,omitempty"`
	OperationName   AgentOperationName `json:"OperationName,omitempty"`
	Phones          []string           `json:"Phones,omitempty"`
	ReceiverPhones  []string           `json:"ReceiverPhones,omitempty"`
	TransferPhones  []string           `json:"TransferPhones,omitempty"`
	OperatorName    string             `json:"OperatorName,omitempty"`
	OperatorAddress string             `json:"OperatorAddress,omitempty"`
	OperatorInn     string             `json:"OperatorInn,omitempty"`
}

type SupplierInfo struct {
	Phones []string `json:"Phones,omitempty"`
	Name   string   `json:"Name,omitempty"`
	Inn    string   `json:"Inn,omitempty"`
}

type ClientInfo struct {
	Birthdate    string `json:"Birthdate,omitempty"`
	Citizenship  string `json:"Citizenship,omitempty"`
	DocumentCode string `json:"DocumentCode,omitempty"`
	DocumentData string `json:"DocumentData,omitempty"`
	Address      string `json:"Address,omitempty"`
}

type OperatingCheckProps struct {
	Name      string `json:"Name"`
	Value     string `json:"Value"`
	Timestamp string `json:"Timestamp"`
}

type SectoralCheckProps struct {
	FederalID string `json:"FederalId"`
	Date      string `json:"Date"`
	Number    string `json:"Number"`
	Value     string `json:"Value"`
}

type SectoralItemProps struct {
	FederalID string `json:"FederalId"`
	Date      string `json:"Date"`
	Number    string `json:"Number"`
	Value     string `json:"Value"`
}

type AddUserProp struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type MarkCode struct {
	MarkCodeType MarkCodeType `json:"MarkCodeType"`
	Value        string       `json:"value"`
}

type MarkQuantity struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// DecodeReceipt picks the receipt variant from its FfdVersion tag. A missing
// tag means the legacy 1.05 shape.
func DecodeReceipt(data []byte) (Receipt, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var tag struct {
		FfdVersion FfdVersion `json:"FfdVersion"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}

	switch tag.FfdVersion {
	case FFD12:
		var r ReceiptFFD12
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode receipt: %w", err)
		}
		return r, nil
	case FFD105, "":
		var r ReceiptFFD105
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode receipt: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFfdVersion, tag.FfdVersion)
	}
}
