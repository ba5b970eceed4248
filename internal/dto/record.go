package dto

import (
	"time"

	"github.com/GlebRadaev/recordbook/internal/domain"
)

const DateLayout = "2006-01-02"

// RecordRequestDTO documents the create/update payload. Handlers decode the
// raw body with ledger.DecodeInput so that absent and zero fields differ.
type RecordRequestDTO struct {
	CustomerName string  `json:"customerName" example:"John Doe"`
	Order        string  `json:"order" example:"Rice 5kg"`
	OrderDate    string  `json:"orderDate" example:"2024-03-15"`
	Total        float64 `json:"total" example:"100"`
	Delivery     float64 `json:"delivery" example:"10"`
	Deposit      float64 `json:"deposit" example:"40"`
	Location     string  `json:"location" example:"Yangon"`
	PhoneNumber  string  `json:"phoneNumber" example:"09-123456"`
	Capital      float64 `json:"capital" example:"70"`
	Kilo         float64 `json:"kilo" example:"5"`
}

type RecordResponseDTO struct {
	ID           int     `json:"id" example:"1"`
	CustomerName string  `json:"customerName" example:"John Doe"`
	Order        string  `json:"order" example:"Rice 5kg"`
	OrderDate    string  `json:"orderDate" example:"2024-03-15"`
	Total        float64 `json:"total" example:"100"`
	Delivery     float64 `json:"delivery" example:"10"`
	Deposit      float64 `json:"deposit" example:"40"`
	Remain       float64 `json:"remain" example:"60"`
	Location     string  `json:"location" example:"Yangon"`
	PhoneNumber  string  `json:"phoneNumber" example:"09-123456"`
	Capital      float64 `json:"capital" example:"70"`
	Kilo         float64 `json:"kilo" example:"5"`
	Profit       float64 `json:"profit" example:"30"`
	ProfitTotal  float64 `json:"profitTotal" example:"30"`
	CapitalTotal float64 `json:"capitalTotal" example:"70"`
	CreatedAt    string  `json:"createdAt" example:"2024-03-15T09:30:00Z"`
	UpdatedAt    string  `json:"updatedAt" example:"2024-03-15T09:30:00Z"`
}

type StatsDTO struct {
	TotalRecords   int     `json:"totalRecords" example:"12"`
	TotalRevenue   float64 `json:"totalRevenue" example:"1200"`
	TotalProfit    float64 `json:"totalProfit" example:"360"`
	TotalCapital   float64 `json:"totalCapital" example:"840"`
	TotalRemaining float64 `json:"totalRemaining" example:"300"`
	TotalKilo      float64 `json:"totalKilo" example:"60"`
	TotalDeposit   float64 `json:"totalDeposit" example:"900"`
	TotalDelivery  float64 `json:"totalDelivery" example:"120"`
}

type DashboardResponseDTO struct {
	Records []RecordResponseDTO `json:"records"`
	Stats   StatsDTO            `json:"stats"`
}

func NewRecordResponse(r *domain.Record) RecordResponseDTO {
	return RecordResponseDTO{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Order:        r.Order,
		OrderDate:    r.OrderDate.Format(DateLayout),
		Total:        r.Total,
		Delivery:     r.Delivery,
		Deposit:      r.Deposit,
		Remain:       r.Remain,
		Location:     r.Location,
		PhoneNumber:  r.PhoneNumber,
		Capital:      r.Capital,
		Kilo:         r.Kilo,
		Profit:       r.Profit,
		ProfitTotal:  r.ProfitTotal,
		CapitalTotal: r.CapitalTotal,
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewRecordListResponse(records []domain.Record) []RecordResponseDTO {
	resp := make([]RecordResponseDTO, 0, len(records))
	for i := range records {
		resp = append(resp, NewRecordResponse(&records[i]))
	}
	return resp
}

func NewDashboardResponse(d *domain.Dashboard) DashboardResponseDTO {
	return DashboardResponseDTO{
		Records: NewRecordListResponse(d.Records),
		Stats: StatsDTO{
			TotalRecords:   d.Stats.TotalRecords,
			TotalRevenue:   d.Stats.TotalRevenue,
			TotalProfit:    d.Stats.TotalProfit,
			TotalCapital:   d.Stats.TotalCapital,
			TotalRemaining: d.Stats.TotalRemaining,
			TotalKilo:      d.Stats.TotalKilo,
			TotalDeposit:   d.Stats.TotalDeposit,
			TotalDelivery:  d.Stats.TotalDelivery,
		},
	}
}
