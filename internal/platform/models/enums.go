package models

type PaymentStatus string

const (
	StatusNew             PaymentStatus = "NEW"
	StatusFormShowed      PaymentStatus = "FORM_SHOWED"
	StatusAuthorizing     PaymentStatus = "AUTHORIZING"
	StatusAuthorized      PaymentStatus = "AUTHORIZED"
	StatusAuthFail        PaymentStatus = "AUTH_FAIL"
	StatusCanceled        PaymentStatus = "CANCELED"
	StatusChecking        PaymentStatus = "CHECKING"
	StatusChecked         PaymentStatus = "CHECKED"
	StatusCompleting      PaymentStatus = "COMPLETING"
	StatusCompleted       PaymentStatus = "COMPLETED"
	StatusConfirming      PaymentStatus = "CONFIRMING"
	StatusConfirmed       PaymentStatus = "CONFIRMED"
	StatusDeadlineExpired PaymentStatus = "DEADLINE_EXPIRED"
	StatusPartialRefunded PaymentStatus = "PARTIAL_REFUNDED"
	StatusPreauthorizing  PaymentStatus = "PREAUTHORIZING"
	StatusProcessing      PaymentStatus = "PROCESSING"
	Status3DSChecking     PaymentStatus = "3DS_CHECKING"
	Status3DSChecked      PaymentStatus = "3DS_CHECKED"
	StatusReversing       PaymentStatus = "REVERSING"
	StatusPartialReversed PaymentStatus = "PARTIAL_REVERSED"
	StatusReversed        PaymentStatus = "REVERSED"
	StatusRefunding       PaymentStatus = "REFUNDING"
	StatusRefunded        PaymentStatus = "REFUNDED"
	StatusRejected        PaymentStatus = "REJECTED"
	StatusUnknown         PaymentStatus = "UNKNOWN"
)

// IsFinal reports whether no further transition is expected without a new
// Confirm or Cancel call.
func (s PaymentStatus) IsFinal() bool {
	switch s {
	case StatusConfirmed, StatusRefunded, StatusReversed, StatusRejected,
		StatusCanceled, StatusDeadlineExpired, StatusAuthFail:
		return true
	}
	return false
}

type Taxation string

const (
	TaxationOSN              Taxation = "osn"
	TaxationUSNIncome        Taxation = "usn_income"
	TaxationUSNIncomeOutcome Taxation = "usn_income_outcome"
	TaxationENVD             Taxation = "envd"
	TaxationESN              Taxation = "esn"
	TaxationPatent           Taxation = "patent"
)

type Tax string

const (
	TaxNone   Tax = "none"
	TaxVAT0   Tax = "vat0"
	TaxVAT10  Tax = "vat10"
	TaxVAT20  Tax = "vat20"
	TaxVAT110 Tax = "vat110"
	TaxVAT120 Tax = "vat120"
)

type PaymentMethod string

const (
	PaymentMethodFullPrepayment PaymentMethod = "full_prepayment"
	PaymentMethodPrepayment     PaymentMethod = "prepayment"
	PaymentMethodAdvance        PaymentMethod = "advance"
	PaymentMethodFullPayment    PaymentMethod = "full_payment"
	PaymentMethodPartialPayment PaymentMethod = "partial_payment"
	PaymentMethodCredit         PaymentMethod = "credit"
	PaymentMethodCreditPayment  PaymentMethod = "credit_payment"
)

type PaymentObject string

const (
	PaymentObjectCommodity            PaymentObject = "commodity"
	PaymentObjectExcise               PaymentObject = "excise"
	PaymentObjectJob                  PaymentObject = "job"
	PaymentObjectService              PaymentObject = "service"
	PaymentObjectGamblingBet          PaymentObject = "gambling_bet"
	PaymentObjectGamblingPrize        PaymentObject = "gambling_prize"
	PaymentObjectLottery              PaymentObject = "lottery"
	PaymentObjectLotteryPrize         PaymentObject = "lottery_prize"
	PaymentObjectIntellectualActivity PaymentObject = "intellectual_activity"
	PaymentObjectPayment              PaymentObject = "payment"
	PaymentObjectAgentCommission      PaymentObject = "agent_commission"
	PaymentObjectComposite            PaymentObject = "composite"
	PaymentObjectAnother              PaymentObject = "another"
)

type AgentSign string

const (
	AgentSignBankPayingAgent    AgentSign = "bank_paying_agent"
	AgentSignBankPayingSubagent AgentSign = "bank_paying_subagent"
	AgentSignPayingAgent        AgentSign = "paying_agent"
	AgentSignPayingSubagent     AgentSign = "paying_subagent"
	AgentSignAttorney           AgentSign = "attorney"
	AgentSignCommissionAgent    AgentSign = "commission_agent"
	AgentSignAnother            AgentSign = "another"
)

type AgentOperationName string

const (
	AgentOperationBankPayingAgent    AgentOperationName = "bank_paying_agent"
	AgentOperationBankPayingSubagent AgentOperationName = "bank_paying_subagent"
)

type MarkCodeType string

const (
	MarkCodeUnknown MarkCodeType = "UNKNOWN"
	MarkCodeEAN8    MarkCodeType = "EAN8"
	MarkCodeEAN13   MarkCodeType = "EAN13"
	MarkCodeITF14   MarkCodeType = "ITF14"
	MarkCodeGS10    MarkCodeType = "GS10"
	MarkCodeGS1M    MarkCodeType = "GS1M"
	MarkCodeShort   MarkCodeType = "SHORT"
	MarkCodeFur     MarkCodeType = "FUR"
	MarkCodeEGAIS20 MarkCodeType = "EGAIS20"
	MarkCodeEGAIS30 MarkCodeType = "EGAIS30"
	MarkCodeRaw     MarkCodeType = "RAWCODE"
)

// MeasurementUnit is the numeric unit code from the fiscal data format tables.
type MeasurementUnit int

const (
	UnitPiece            MeasurementUnit = 0
	UnitGram             MeasurementUnit = 10
	UnitKilogram         MeasurementUnit = 11
	UnitTon              MeasurementUnit = 12
	UnitCentimeter       MeasurementUnit = 20
	UnitDecimeter        MeasurementUnit = 21
	UnitMeter            MeasurementUnit = 22
	UnitSquareCentimeter MeasurementUnit = 30
	UnitSquareDecimeter  MeasurementUnit = 31
	UnitSquareMeter      MeasurementUnit = 32
	UnitMillimeter       MeasurementUnit = 40
	UnitLiter            MeasurementUnit = 41
	UnitCubicMeter       MeasurementUnit = 42
	UnitKilowattHour     MeasurementUnit = 50
	UnitGigacalorie      MeasurementUnit = 51
	UnitDay              MeasurementUnit = 70
	UnitHour             MeasurementUnit = 71
	UnitMinute           MeasurementUnit = 72
	UnitSecond           MeasurementUnit = 73
	UnitKilobyte         MeasurementUnit = 80
	UnitMegabyte         MeasurementUnit = 81
	UnitGigabyte         MeasurementUnit = 82
	UnitTerabyte         MeasurementUnit = 83
	UnitOther            MeasurementUnit = 255
)

type PaymentRoute string

const (
	RouteTCB  PaymentRoute = "TCB"
	RouteBNPL PaymentRoute = "BNPL"
)

type PaymentSource string

const (
	SourceInstallment PaymentSource = "installment"
	SourceBNPL        PaymentSource = "BNPL"
)

// PayType selects one-stage (O) or two-stage (T) payment.
type PayType string

const (
	PayTypeOneStage PayType = "O"
	PayTypeTwoStage PayType = "T"
)

type Language string

const (
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
)
