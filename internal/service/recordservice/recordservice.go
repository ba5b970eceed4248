package recordservice

//go:generate mockgen -destination=mock_repo.go -package=recordservice github.com/GlebRadaev/recordbook/internal/service/recordservice Repo

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/recordbook/internal/domain"
	"github.com/GlebRadaev/recordbook/internal/ledger"
)

type Repo interface {
	Create(ctx context.Context, record *domain.Record) (*domain.Record, error)
	FindByID(ctx context.Context, id int) (*domain.Record, error)
	FindAll(ctx context.Context, rng *domain.DateRange) ([]domain.Record, error)
	Update(ctx context.Context, id int, patch *domain.RecordPatch, updatedAt time.Time) (*domain.Record, error)
	Delete(ctx context.Context, id int) (bool, error)
	Summarize(ctx context.Context, rng *domain.DateRange) (*domain.Stats, error)
}

type Service struct {
	repo Repo
	now  func() time.Time
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func storageError(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}

// Create stores a fully specified record with its derived fields.
func (s *Service) Create(ctx context.Context, in *domain.RecordInput) (*domain.Record, error) {
	if err := requireComplete(in); err != nil {
		return nil, err
	}
	if err := ledger.Validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	record := &domain.Record{
		CustomerName: *in.CustomerName,
		Order:        *in.Order,
		OrderDate:    *in.OrderDate,
		Total:        *in.Total,
		Delivery:     *in.Delivery,
		Deposit:      *in.Deposit,
		Location:     *in.Location,
		PhoneNumber:  *in.PhoneNumber,
		Capital:      *in.Capital,
		Kilo:         *in.Kilo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	ledger.Apply(record, ledger.Compute(record.Total, record.Deposit, record.Capital))

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		zap.L().Error("can't save record", zap.Error(err))
		return nil, storageError("create record", err)
	}
	zap.L().Info("record created", zap.Int("id", created.ID))
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Record, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get record", zap.Int("id", id), zap.Error(err))
		return nil, storageError("get record", err)
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	return record, nil
}

// Update applies a partial update. Derived fields are recomputed only when
// total, deposit or capital is part of in.
//
// The read and the write are separate statements; two concurrent updates of
// the same record can lose one of them.
func (s *Service) Update(ctx context.Context, id int, in *domain.RecordInput) (*domain.Record, error) {
	if err := ledger.Validate(in); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := ledger.ResolveUpdate(existing, in)
	if patch.Empty() {
		zap.L().Debug("update carries no changed fields", zap.Int("id", id))
	}
	updated, err := s.repo.Update(ctx, id, patch, s.now())
	if err != nil {
		zap.L().Error("failed to update record", zap.Int("id", id), zap.Error(err))
		return nil, storageError("update record", err)
	}
	if updated == nil {
		return nil, domain.ErrRecordNotFound
	}
	zap.L().Info("record updated", zap.Int("id", id), zap.Bool("recomputed", patch.Derived != nil))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		zap.L().Error("failed to delete record", zap.Int("id", id), zap.Error(err))
		return storageError("delete record", err)
	}
	if !deleted {
		return domain.ErrRecordNotFound
	}
	zap.L().Info("record deleted", zap.Int("id", id))
	return nil
}

// List returns the records of the filter's month (all when unset) that
// match its search query.
func (s *Service) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	records, err := s.repo.FindAll(ctx, filter.Range)
	if err != nil {
		zap.L().Error("failed to list records", zap.Error(err))
		return nil, storageError("list records", err)
	}
	return ledger.Search(records, filter.Query), nil
}

// Dashboard loads the filtered records and the month totals concurrently.
// Totals cover the date range only; the search query narrows the records.
func (s *Service) Dashboard(ctx context.Context, filter domain.RecordFilter) (*domain.Dashboard, error) {
	var (
		records []domain.Record
		stats   *domain.Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.repo.Summarize(gctx, filter.Range)
		if err != nil {
			zap.L().Error("failed to summarize records", zap.Error(err))
			return storageError("summarize records", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Dashboard{Records: records, Stats: *stats}, nil
}

func requireComplete(in *domain.RecordInput) error {
	missing := func(field string) error {
		return &domain.ValidationError{Field: field, Reason: "is required"}
	}
	switch {
	case in.CustomerName == nil:
		return missing(ledger.FieldCustomerName)
	case in.Order == nil:
		return missing(ledger.FieldOrder)
	case in.OrderDate == nil:
		return missing(ledger.FieldOrderDate)
	case in.Total == nil:
		return missing(ledger.FieldTotal)
	case in.Delivery == nil:
		return missing(ledger.FieldDelivery)
	case in.Deposit == nil:
		return missing(ledger.FieldDeposit)
	case in.Location == nil:
		return missing(ledger.FieldLocation)
	case in.PhoneNumber == nil:
		return missing(ledger.FieldPhoneNumber)
	case in.Capital == nil:
		return missing(ledger.FieldCapital)
	case in.Kilo == nil:
		return missing(ledger.FieldKilo)
	}
	return nil
}
