package recordrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/recordbook/internal/domain"
	"github.com/GlebRadaev/recordbook/internal/pg"
)

const recordColumns = `id, customer_name, order_desc, order_date, total, delivery, deposit, remain,
        location, phone_number, capital, kilo, profit, profit_total, capital_total, created_at, updated_at`

const monthPredicate = `WHERE order_date BETWEEN $1::date AND $2::date`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanRecord(row pgx.Row) (domain.Record, error) {
	var r domain.Record
	err := row.Scan(
		&r.ID, &r.CustomerName, &r.Order, &r.OrderDate,
		&r.Total, &r.Delivery, &r.Deposit, &r.Remain,
		&r.Location, &r.PhoneNumber, &r.Capital, &r.Kilo,
		&r.Profit, &r.ProfitTotal, &r.CapitalTotal,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *Repository) Create(ctx context.Context, record *domain.Record) (*domain.Record, error) {
	query := `
        INSERT INTO records (customer_name, order_desc, order_date, total, delivery, deposit, remain,
        location, phone_number, capital, kilo, profit, profit_total, capital_total, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING ` + recordColumns

	var created domain.Record
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			record.CustomerName, record.Order, record.OrderDate,
			record.Total, record.Delivery, record.Deposit, record.Remain,
			record.Location, record.PhoneNumber, record.Capital, record.Kilo,
			record.Profit, record.ProfitTotal, record.CapitalTotal,
			record.CreatedAt, record.UpdatedAt,
		)
		var err error
		created, err = scanRecord(row)
		if err != nil {
			zap.L().Error("can't create record", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Record, error) {
	query := `
        SELECT ` + recordColumns + `
        FROM records
        WHERE id = $1
    `
	record, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find record", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &record, nil
}

// FindAll returns records ordered newest order date first, ties by id.
// A nil rng means no date filter.
func (r *Repository) FindAll(ctx context.Context, rng *domain.DateRange) ([]domain.Record, error) {
	query := `
        SELECT ` + recordColumns + `
        FROM records
        %s
        ORDER BY order_date DESC, id DESC
    `
	where, args := rangeClause(rng)

	rows, err := r.db.Query(ctx, fmt.Sprintf(query, where), args...)
	if err != nil {
		zap.L().Error("can't get records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			zap.L().Error("can't scan record row", zap.Error(err))
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate record rows", zap.Error(err))
		return nil, err
	}
	return records, nil
}

// Update writes the columns present in patch plus updated_at and returns
// the stored row. It returns nil, nil when no row has the given id.
func (r *Repository) Update(ctx context.Context, id int, patch *domain.RecordPatch, updatedAt time.Time) (*domain.Record, error) {
	sets, args := patchAssignments(patch)
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, updatedAt, id)

	query := fmt.Sprintf(`
        UPDATE records
        SET %s
        WHERE id = $%d
        RETURNING %s
    `, strings.Join(sets, ", "), len(args), recordColumns)

	var updated *domain.Record
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		record, err := scanRecord(r.db.QueryRow(ctx, query, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			zap.L().Error("failed to update record", zap.Int("id", id), zap.Error(err))
			return err
		}
		updated = &record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete reports whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id int) (bool, error) {
	query := `
        DELETE FROM records
        WHERE id = $1
    `
	var deleted bool
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, id)
		if err != nil {
			zap.L().Error("failed to delete record", zap.Int("id", id), zap.Error(err))
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (r *Repository) Summarize(ctx context.Context, rng *domain.DateRange) (*domain.Stats, error) {
	query := `
        SELECT COUNT(*),
               COALESCE(SUM(total), 0),
               COALESCE(SUM(profit), 0),
               COALESCE(SUM(capital), 0),
               COALESCE(SUM(remain), 0),
               COALESCE(SUM(kilo), 0),
               COALESCE(SUM(deposit), 0),
               COALESCE(SUM(delivery), 0)
        FROM records
        %s
    `
	where, args := rangeClause(rng)

	var s domain.Stats
	err := r.db.QueryRow(ctx, fmt.Sprintf(query, where), args...).Scan(
		&s.TotalRecords, &s.TotalRevenue, &s.TotalProfit, &s.TotalCapital,
		&s.TotalRemaining, &s.TotalKilo, &s.TotalDeposit, &s.TotalDelivery,
	)
	if err != nil {
		zap.L().Error("can't summarize records", zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func rangeClause(rng *domain.DateRange) (string, []any) {
	if rng == nil {
		return "", nil
	}
	return monthPredicate, []any{rng.From, rng.To}
}

func patchAssignments(patch *domain.RecordPatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	in := patch.RecordInput
	if in.CustomerName != nil {
		add("customer_name", *in.CustomerName)
	}
	if in.Order != nil {
		add("order_desc", *in.Order)
	}
	if in.OrderDate != nil {
		add("order_date", *in.OrderDate)
	}
	if in.Total != nil {
		add("total", *in.Total)
	}
	if in.Delivery != nil {
		add("delivery", *in.Delivery)
	}
	if in.Deposit != nil {
		add("deposit", *in.Deposit)
	}
	if in.Location != nil {
		add("location", *in.Location)
	}
	if in.PhoneNumber != nil {
		add("phone_number", *in.PhoneNumber)
	}
	if in.Capital != nil {
		add("capital", *in.Capital)
	}
	if in.Kilo != nil {
		add("kilo", *in.Kilo)
	}
	if d := patch.Derived; d != nil {
		add("remain", d.Remain)
		add("profit", d.Profit)
		add("profit_total", d.ProfitTotal)
		add("capital_total", d.CapitalTotal)
	}
	return sets, args
}
