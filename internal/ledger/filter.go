package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/GlebRadaev/recordbook/internal/domain"
)

// MonthRange returns the inclusive range covering every instant of the
// given month. Both ends are anchored to the same UTC calendar month.
func MonthRange(month, year int) (domain.DateRange, error) {
	if month < 1 || month > 12 {
		return domain.DateRange{}, &domain.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}
	if year < 1 || year > 9999 {
		return domain.DateRange{}, &domain.ValidationError{Field: "year", Reason: "must be between 1 and 9999"}
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return domain.DateRange{From: from, To: to}, nil
}

// ParseFilter builds a RecordFilter from raw query values. month and year
// must be given together; when both are blank no date range applies.
func ParseFilter(month, year, query string) (domain.RecordFilter, error) {
	filter := domain.RecordFilter{Query: strings.TrimSpace(query)}

	month, year = strings.TrimSpace(month), strings.TrimSpace(year)
	switch {
	case month == "" && year == "":
		return filter, nil
	case month == "":
		return filter, &domain.ValidationError{Field: "month", Reason: "is required when year is set"}
	case year == "":
		return filter, &domain.ValidationError{Field: "year", Reason: "is required when month is set"}
	}

	m, err := strconv.Atoi(month)
	if err != nil {
		return filter, &domain.ValidationError{Field: "month", Reason: "must be a number"}
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return filter, &domain.ValidationError{Field: "year", Reason: "must be a number"}
	}
	rng, err := MonthRange(m, y)
	if err != nil {
		return filter, err
	}
	filter.Range = &rng
	return filter, nil
}

// Search keeps the records whose customer name, order, location or phone
// number contains query, ignoring case. A blank query keeps everything.
// Input order is preserved.
func Search(records []domain.Record, query string) []domain.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	matched := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if matches(r, q) {
			matched = append(matched, r)
		}
	}
	return matched
}

func matches(r domain.Record, q string) bool {
	for _, s := range []string{r.CustomerName, r.Order, r.Location, r.PhoneNumber} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
