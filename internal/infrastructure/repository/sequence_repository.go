package repository

import (
	"context"
	"fmt"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	domainRepo "github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments and returns the sequence value. The UPDATE takes a
// row lock for the rest of the transaction, so two concurrent
// allocations for the same document kind serialize and never observe
// the same value.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	db := conn(ctx, r.db)

	result := db.Model(&entity.Sequence{}).
		Where("name = ?", name).
		Update("value", gorm.Expr("value + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("sequence %q not found", name)
	}

	var seq entity.Sequence
	if err := db.First(&seq, "name = ?", name).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

// Ensure creates the named sequences if they do not exist yet
func (r *sequenceRepository) Ensure(ctx context.Context, names ...string) error {
	for _, name := range names {
		seq := entity.Sequence{Name: name, Value: 0}
		err := conn(ctx, r.db).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&seq).Error
		if err != nil {
			return err
		}
	}
	return nil
}
