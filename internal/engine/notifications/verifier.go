package notifications

import (
	"encoding/json"
	"errors"
	"fmt"

	"securepay/internal/engine/signing"
	"securepay/internal/platform/models"
)

var (
	ErrMalformedNotification = errors.New("malformed notification")
	ErrTerminalKeyMismatch   = errors.New("notification terminal key mismatch")
	ErrInvalidToken          = errors.New("notification token is invalid")
)

// Verifier authenticates notifications with the same token algorithm the
// client uses for requests.
type Verifier struct {
	terminalKey string
	password    string
	signer      *signing.Signer
}

func NewVerifier(terminalKey, password string, signer *signing.Signer) *Verifier {
	if signer == nil {
		signer = signing.NewSigner()
	}
	return &Verifier{terminalKey: terminalKey, password: password, signer: signer}
}

// Verify checks the terminal key and token of a raw notification body and
// returns the decoded notification.
func (v *Verifier) Verify(body []byte) (*models.Notification, error) {
	fields, err := signing.FieldsFromJSON(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNotification, err)
	}

	if fields["TerminalKey"] != v.terminalKey {
		return nil, fmt.Errorf("%w: %q", ErrTerminalKeyMismatch, fields["TerminalKey"])
	}

	token, ok := fields[signing.TokenField]
	if !ok || token == "" {
		return nil, ErrInvalidToken
	}
	if !v.signer.Verify(fields.Without(signing.TokenField), v.password, token) {
		return nil, ErrInvalidToken
	}

	var n models.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNotification, err)
	}

	return &n, nil
}
