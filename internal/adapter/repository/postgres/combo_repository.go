package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/entity"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/repository"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
)

type comboRepository struct {
	db *gorm.DB
}

// NewComboRepository creates a new combo repository
func NewComboRepository(db *gorm.DB) repository.ComboRepository {
	return &comboRepository{db: db}
}

func (r *comboRepository) ComboCodes(ctx context.Context, comboID int64) ([]scoring.PunchCode, error) {
	var combo entity.Combo
	err := r.db.WithContext(ctx).First(&combo, "id = ?", comboID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: combo %d", repository.ErrPlanNotFound, comboID)
		}
		return nil, err
	}
	return combo.Codes(), nil
}

func (r *comboRepository) ComboSetCodes(ctx context.Context, comboSetID int64) ([][]scoring.PunchCode, error) {
	var set entity.ComboSet
	err := r.db.WithContext(ctx).
		Preload("Combos", func(db *gorm.DB) *gorm.DB {
			return db.Order("combo_set_combos.position ASC")
		}).
		Preload("Combos.Combo").
		First(&set, "id = ?", comboSetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: combo set %d", repository.ErrPlanNotFound, comboSetID)
		}
		return nil, err
	}

	codes := make([][]scoring.PunchCode, 0, len(set.Combos))
	for _, member := range set.Combos {
		if member.Combo.ID == 0 {
			return nil, fmt.Errorf("%w: combo %d in set %d", repository.ErrPlanNotFound, member.ComboID, comboSetID)
		}
		codes = append(codes, member.Combo.Codes())
	}
	return codes, nil
}
