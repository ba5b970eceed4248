package domain

import "time"

type User struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
}

type Record struct {
	ID           int       `db:"id"            json:"id"`
	CustomerName string    `db:"customer_name" json:"customerName"`
	Order        string    `db:"order_desc"    json:"order"`
	OrderDate    time.Time `db:"order_date"    json:"orderDate"`
	Total        float64   `db:"total"         json:"total"`
	Delivery     float64   `db:"delivery"      json:"delivery"`
	Deposit      float64   `db:"deposit"       json:"deposit"`
	Remain       float64   `db:"remain"        json:"remain"`
	Location     string    `db:"location"      json:"location"`
	PhoneNumber  string    `db:"phone_number"  json:"phoneNumber"`
	Capital      float64   `db:"capital"       json:"capital"`
	Kilo         float64   `db:"kilo"          json:"kilo"`
	Profit       float64   `db:"profit"        json:"profit"`
	ProfitTotal  float64   `db:"profit_total"  json:"profitTotal"`
	CapitalTotal float64   `db:"capital_total" json:"capitalTotal"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updatedAt"`
}

// RecordInput carries caller-supplied fields. A nil pointer means the field
// was absent from the payload.
type RecordInput struct {
	CustomerName *string    `json:"customerName" validate:"omitnil,min=1"`
	Order        *string    `json:"order"        validate:"omitnil,min=1"`
	OrderDate    *time.Time `json:"orderDate"`
	Total        *float64   `json:"total"        validate:"omitnil,gte=0"`
	Delivery     *float64   `json:"delivery"     validate:"omitnil,gte=0"`
	Deposit      *float64   `json:"deposit"      validate:"omitnil,gte=0"`
	Location     *string    `json:"location"     validate:"omitnil,min=1"`
	PhoneNumber  *string    `json:"phoneNumber"  validate:"omitnil,min=1"`
	Capital      *float64   `json:"capital"      validate:"omitnil,gte=0"`
	Kilo         *float64   `json:"kilo"         validate:"omitnil,gte=0"`
}

// TouchesMoney reports whether any input of the derived fields is present.
func (in *RecordInput) TouchesMoney() bool {
	return in.Total != nil || in.Deposit != nil || in.Capital != nil
}

type Derived struct {
	Remain       float64
	Profit       float64
	ProfitTotal  float64
	CapitalTotal float64
}

// RecordPatch is the set of columns an update writes. Derived is nil when
// none of total, deposit or capital was part of the update.
type RecordPatch struct {
	RecordInput
	Derived *Derived
}

func (p *RecordPatch) Empty() bool {
	in := p.RecordInput
	return p.Derived == nil &&
		in.CustomerName == nil && in.Order == nil && in.OrderDate == nil &&
		in.Total == nil && in.Delivery == nil && in.Deposit == nil &&
		in.Location == nil && in.PhoneNumber == nil && in.Capital == nil && in.Kilo == nil
}

// DateRange is inclusive on both ends.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

type RecordFilter struct {
	Range *DateRange
	Query string
}

type Stats struct {
	TotalRecords   int     `db:"total_records"`
	TotalRevenue   float64 `db:"total_revenue"`
	TotalProfit    float64 `db:"total_profit"`
	TotalCapital   float64 `db:"total_capital"`
	TotalRemaining float64 `db:"total_remaining"`
	TotalKilo      float64 `db:"total_kilo"`
	TotalDeposit   float64 `db:"total_deposit"`
	TotalDelivery  float64 `db:"total_delivery"`
}

type Dashboard struct {
	Records []Record
	Stats   Stats
}
