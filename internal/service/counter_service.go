package service

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pagehits/counthub/internal/model"
	"pagehits/counthub/internal/repository"
)

// Action names accepted by Update.
const (
	ActionIncrement = "increment"
	ActionReset     = "reset"
)

type CounterService interface {
	// Get returns the counter for name, creating it with count 0 if absent.
	Get(ctx context.Context, name string) (*model.Counter, error)
	// Update applies an increment or reset action and returns the
	// resulting counter. Unknown actions fail with ErrUnsupportedOperation.
	Update(ctx context.Context, name, action string) (*model.Counter, error)
}

type counterService struct {
	repo   repository.CounterRepository
	db     *gorm.DB // nil when the repository is not Postgres-backed
	logger *zap.Logger

	// Schema init runs at most once per process; the outcome, success or
	// failure, is cached so a broken store never triggers a DDL retry storm.
	initOnce sync.Once
	initErr  error
}

func NewCounterService(repo repository.CounterRepository, db *gorm.DB, logger *zap.Logger) CounterService {
	return &counterService{repo: repo, db: db, logger: logger}
}

func (s *counterService) Get(ctx context.Context, name string) (*model.Counter, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	counter, err := s.repo.GetOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: get %q: %v", ErrStoreUnavailable, name, err)
	}
	return counter, nil
}

func (s *counterService) Update(ctx context.Context, name, action string) (*model.Counter, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var (
		counter *model.Counter
		err     error
	)
	switch action {
	case ActionIncrement:
		counter, err = s.repo.Increment(ctx, name)
	case ActionReset:
		counter, err = s.repo.Reset(ctx, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, action)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrStoreUnavailable, action, name, err)
	}
	return counter, nil
}

// ensureSchema lazily creates the counters table and its name index.
func (s *counterService) ensureSchema() error {
	s.initOnce.Do(func() {
		if s.db == nil {
			return
		}
		if err := model.AutoMigrate(s.db); err != nil {
			s.initErr = err
			s.logger.Error("counter schema init failed", zap.Error(err))
			return
		}
		s.logger.Info("counter schema ensured")
	})
	return s.initErr
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	// The limit counts characters, not bytes; multi-byte names are fine.
	if utf8.RuneCountInString(name) > model.MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidArgument, model.MaxNameLength)
	}
	return nil
}
