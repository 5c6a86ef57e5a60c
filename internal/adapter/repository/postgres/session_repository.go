package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/entity"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/repository"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetBattleSession(ctx context.Context, battleID, userID int64) (*entity.Session, error) {
	var session entity.Session
	err := withPunches(r.db.WithContext(ctx)).
		Where("battle_id = ? AND user_id = ?", battleID, userID).
		Order("id DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListByUserSince(ctx context.Context, userID int64, since time.Time) ([]*entity.Session, error) {
	var sessions []*entity.Session
	err := withPunches(r.db.WithContext(ctx)).
		Where("user_id = ? AND start_time > ? AND type_id IN ?", userID, since,
			[]int{int(scoring.PlanTypeCombo), int(scoring.PlanTypeComboSet)}).
		Order("start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// withPunches preloads rounds and their punches in capture order
func withPunches(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Rounds", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_rounds.id ASC")
		}).
		Preload("Rounds.Punches", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_round_punches.sequence ASC")
		})
}
