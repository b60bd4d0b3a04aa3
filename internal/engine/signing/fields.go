package signing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrNotObject = errors.New("signing: payload is not a JSON object")

// Fields holds the signable top-level fields of a request, already rendered
// to the string form they take in the token. Booleans, nulls, objects and
// arrays never make it in here.
type Fields map[string]string

func (f Fields) SetString(name, value string) Fields {
	f[name] = value
	return f
}

// SetOptString adds the field only when it would be serialised, matching
// `json:",omitempty"` on the wire.
func (f Fields) SetOptString(name, value string) Fields {
	if value != "" {
		f[name] = value
	}
	return f
}

func (f Fields) SetInt(name string, value int64) Fields {
	f[name] = strconv.FormatInt(value, 10)
	return f
}

func (f Fields) SetOptInt(name string, value int64) Fields {
	if value != 0 {
		f.SetInt(name, value)
	}
	return f
}

func (f Fields) SetFloat(name string, value float64) Fields {
	f[name] = formatFloat(value)
	return f
}

// Without returns a copy of f with the named fields removed.
func (f Fields) Without(names ...string) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}

// FieldsFromJSON extracts the signable fields of a JSON object. Numbers keep
// their decimal value, so 100 and 100.0 both render as "100".
func FieldsFromJSON(body []byte) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if raw == nil {
		return nil, ErrNotObject
	}

	fields := make(Fields, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			fields[name] = v
		case json.Number:
			fields[name] = formatNumber(v)
		}
	}
	return fields, nil
}

// maxSafeInteger is the largest integer a float64 holds exactly.
const maxSafeInteger = 1<<53 - 1

// formatNumber renders n the way the provider does: as a double, so integers
// past 2^53 lose precision and very large or small magnitudes use exponent
// form.
func formatNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil && i >= -maxSafeInteger && i <= maxSafeInteger {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return formatFloat(f)
	}
	return n.String()
}

// formatFloat uses the shortest round-trip digits, plain decimal notation for
// magnitudes in [1e-6, 1e21) and exponent form like 1e+21 or 1.5e-7 outside.
func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
