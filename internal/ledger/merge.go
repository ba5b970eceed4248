package ledger

import (
	"github.com/GlebRadaev/recordbook/internal/domain"
)

// ResolveUpdate merges a validated partial update with the stored record.
//
// Only fields whose value differs from existing are kept. When the update
// carries any of total, deposit or capital, the missing ones are taken from
// existing and all four derived fields are recomputed.
func ResolveUpdate(existing *domain.Record, in *domain.RecordInput) *domain.RecordPatch {
	patch := &domain.RecordPatch{
		RecordInput: domain.RecordInput{
			CustomerName: changedString(in.CustomerName, existing.CustomerName),
			Order:        changedString(in.Order, existing.Order),
			Location:     changedString(in.Location, existing.Location),
			PhoneNumber:  changedString(in.PhoneNumber, existing.PhoneNumber),
			Total:        changedFloat(in.Total, existing.Total),
			Delivery:     changedFloat(in.Delivery, existing.Delivery),
			Deposit:      changedFloat(in.Deposit, existing.Deposit),
			Capital:      changedFloat(in.Capital, existing.Capital),
			Kilo:         changedFloat(in.Kilo, existing.Kilo),
		},
	}
	if in.OrderDate != nil && !in.OrderDate.Equal(existing.OrderDate) {
		patch.OrderDate = in.OrderDate
	}

	if in.TouchesMoney() {
		d := Compute(
			valueOr(in.Total, existing.Total),
			valueOr(in.Deposit, existing.Deposit),
			valueOr(in.Capital, existing.Capital),
		)
		patch.Derived = &d
	}
	return patch
}

func changedString(v *string, current string) *string {
	if v == nil || *v == current {
		return nil
	}
	return v
}

func changedFloat(v *float64, current float64) *float64 {
	if v == nil || *v == current {
		return nil
	}
	return v
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
