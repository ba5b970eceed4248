package ledger

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/recordbook/internal/domain"
	"github.com/GlebRadaev/recordbook/pkg/validate"
)

type Mode int

const (
	// ModeCreate requires every input field.
	ModeCreate Mode = iota
	// ModeUpdate accepts any subset of input fields.
	ModeUpdate
)

const (
	FieldCustomerName = "customerName"
	FieldOrder        = "order"
	FieldOrderDate    = "orderDate"
	FieldTotal        = "total"
	FieldDelivery     = "delivery"
	FieldDeposit      = "deposit"
	FieldLocation     = "location"
	FieldPhoneNumber  = "phoneNumber"
	FieldCapital      = "capital"
	FieldKilo         = "kilo"
)

var inputFields = []string{
	FieldCustomerName,
	FieldOrder,
	FieldOrderDate,
	FieldTotal,
	FieldDelivery,
	FieldDeposit,
	FieldLocation,
	FieldPhoneNumber,
	FieldCapital,
	FieldKilo,
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	time.RFC3339,
}

// DecodeInput parses a JSON object into a normalized RecordInput.
// Text is trimmed, numbers may arrive as JSON numbers or numeric strings,
// and orderDate is reduced to a UTC calendar date. Keys outside the input
// set are ignored. Failures are *domain.ValidationError.
func DecodeInput(body []byte, mode Mode) (*domain.RecordInput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, &domain.ValidationError{Field: "body", Reason: "must be a JSON object"}
	}

	in := &domain.RecordInput{}
	for _, field := range inputFields {
		msg, ok := raw[field]
		if !ok {
			if mode == ModeCreate {
				return nil, &domain.ValidationError{Field: field, Reason: "is required"}
			}
			continue
		}
		if err := decodeField(in, field, msg); err != nil {
			return nil, err
		}
	}

	if err := Validate(in); err != nil {
		return nil, err
	}
	return in, nil
}

// Validate checks the ranges and emptiness of the fields present in in.
func Validate(in *domain.RecordInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	if fe, ok := validate.FirstFieldError(err); ok {
		return &domain.ValidationError{Field: fe.Field(), Reason: reasonFor(fe.Tag())}
	}
	return err
}

func decodeField(in *domain.RecordInput, field string, msg json.RawMessage) error {
	switch field {
	case FieldCustomerName:
		return decodeText(field, msg, &in.CustomerName)
	case FieldOrder:
		return decodeText(field, msg, &in.Order)
	case FieldLocation:
		return decodeText(field, msg, &in.Location)
	case FieldPhoneNumber:
		return decodeText(field, msg, &in.PhoneNumber)
	case FieldTotal:
		return decodeNumber(field, msg, &in.Total)
	case FieldDelivery:
		return decodeNumber(field, msg, &in.Delivery)
	case FieldDeposit:
		return decodeNumber(field, msg, &in.Deposit)
	case FieldCapital:
		return decodeNumber(field, msg, &in.Capital)
	case FieldKilo:
		return decodeNumber(field, msg, &in.Kilo)
	case FieldOrderDate:
		return decodeDate(field, msg, &in.OrderDate)
	}
	return nil
}

func decodeText(field string, msg json.RawMessage, dst **string) error {
	var s string
	if isNull(msg) || json.Unmarshal(msg, &s) != nil {
		return &domain.ValidationError{Field: field, Reason: "must be a string"}
	}
	s = strings.TrimSpace(s)
	*dst = &s
	return nil
}

func decodeNumber(field string, msg json.RawMessage, dst **float64) error {
	invalid := &domain.ValidationError{Field: field, Reason: "must be a number"}
	if isNull(msg) {
		return invalid
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err != nil {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return invalid
		}
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return invalid
		}
		f = d.InexactFloat64()
	}
	// values past the float64 range round to ±Inf
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return invalid
	}
	*dst = &f
	return nil
}

func decodeDate(field string, msg json.RawMessage, dst **time.Time) error {
	var s string
	if isNull(msg) || json.Unmarshal(msg, &s) != nil {
		return &domain.ValidationError{Field: field, Reason: "must be a valid date"}
	}
	t, ok := ParseDate(s)
	if !ok {
		return &domain.ValidationError{Field: field, Reason: "must be a valid date"}
	}
	*dst = &t
	return nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date it names, at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}

func reasonFor(tag string) string {
	switch tag {
	case "min":
		return "must not be empty"
	case "gte":
		return "must be greater than or equal to 0"
	default:
		return "failed " + tag + " check"
	}
}
