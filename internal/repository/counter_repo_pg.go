package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pagehits/counthub/internal/model"
)

type pgCounterRepository struct {
	db *gorm.DB
}

func NewPGCounterRepository(db *gorm.DB) CounterRepository {
	return &pgCounterRepository{db: db}
}

func (r *pgCounterRepository) GetOrCreate(ctx context.Context, name string) (*model.Counter, error) {
	// Upsert tolerates races: concurrent first visits hit the unique
	// constraint on name and all resolve to the same row.
	seed := model.Counter{Name: name}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&seed).Error; err != nil {
		return nil, err
	}
	return r.fetch(ctx, name)
}

func (r *pgCounterRepository) Increment(ctx context.Context, name string) (*model.Counter, error) {
	seed := model.Counter{Name: name, Count: 1}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("counters.count + 1"),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&seed).Error; err != nil {
		return nil, err
	}
	return r.fetch(ctx, name)
}

func (r *pgCounterRepository) Reset(ctx context.Context, name string) (*model.Counter, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Counter{}).
		Where("name = ?", name).
		UpdateColumn("count", 0)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// No row: report a zero count without persisting one.
		return &model.Counter{Name: name}, nil
	}
	return r.fetch(ctx, name)
}

func (r *pgCounterRepository) fetch(ctx context.Context, name string) (*model.Counter, error) {
	var counter model.Counter
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&counter).Error; err != nil {
		return nil, err
	}
	return &counter, nil
}
