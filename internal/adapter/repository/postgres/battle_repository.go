package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/entity"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/repository"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
)

type battleRepository struct {
	db *gorm.DB
}

// NewBattleRepository creates a new battle repository
func NewBattleRepository(db *gorm.DB) repository.BattleRepository {
	return &battleRepository{db: db}
}

func (r *battleRepository) GetByID(ctx context.Context, id int64) (*entity.Battle, error) {
	var battle entity.Battle
	err := r.db.WithContext(ctx).First(&battle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &battle, nil
}

func (r *battleRepository) Update(ctx context.Context, battle *entity.Battle) error {
	return r.db.WithContext(ctx).Save(battle).Error
}

func (r *battleRepository) SaveVerdict(ctx context.Context, battleID int64, verdict scoring.Verdict, at time.Time) (*entity.Battle, error) {
	var battle entity.Battle
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&battle, "id = ?", battleID).Error; err != nil {
			return err
		}

		// Another worker got here first; keep its verdict.
		if battle.IsFinalized() {
			return nil
		}

		battle.ApplyVerdict(verdict, at)
		return tx.Model(&battle).
			Select("winner_user_id", "finalized_at").
			Updates(&battle).Error
	})
	if err != nil {
		return nil, err
	}
	return &battle, nil
}

func (r *battleRepository) ListPendingFinalization(ctx context.Context, limit int) ([]*entity.Battle, error) {
	var battles []*entity.Battle
	err := r.db.WithContext(ctx).
		Where("user_finished = ? AND opponent_finished = ? AND finalized_at IS NULL", true, true).
		Order("id ASC").
		Limit(limit).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *battleRepository) ListFinalizedByUser(ctx context.Context, userID int64) ([]*entity.Battle, error) {
	var battles []*entity.Battle
	err := r.db.WithContext(ctx).
		Where("(user_id = ? OR opponent_user_id = ?) AND finalized_at IS NOT NULL", userID, userID).
		Order("finalized_at ASC").
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}
