package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/recordbook/internal/domain"
)

func TestNewRecordResponse(t *testing.T) {
	created := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
	r := &domain.Record{
		ID:           7,
		CustomerName: "John Doe",
		Order:        "Rice 5kg",
		OrderDate:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Total:        100,
		Deposit:      40,
		Remain:       60,
		Capital:      70,
		Profit:       30,
		ProfitTotal:  30,
		CapitalTotal: 70,
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	resp := NewRecordResponse(r)

	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, "2024-03-15", resp.OrderDate)
	assert.Equal(t, "2024-03-15T09:30:00Z", resp.CreatedAt)
	assert.Equal(t, 60.0, resp.Remain)
	assert.Equal(t, 30.0, resp.ProfitTotal)
}

func TestNewDashboardResponse(t *testing.T) {
	d := &domain.Dashboard{
		Records: nil,
		Stats:   domain.Stats{TotalRecords: 2, TotalRevenue: 300, TotalProfit: 90},
	}

	resp := NewDashboardResponse(d)

	assert.NotNil(t, resp.Records)
	assert.Empty(t, resp.Records)
	assert.Equal(t, 2, resp.Stats.TotalRecords)
	assert.Equal(t, 300.0, resp.Stats.TotalRevenue)
	assert.Equal(t, 90.0, resp.Stats.TotalProfit)
}
