package usecase

import (
	"context"
	"fmt"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
)

// PunchInput is one punch of a previewed attempt
type PunchInput struct {
	Hand  string  `json:"hand" binding:"required,oneof=L R"`
	Type  string  `json:"punch_type" binding:"required"`
	Speed float64 `json:"speed"`
	Force float64 `json:"force"`
}

// CompareInput represents the input for a score preview. A missing punch
// list is scored as no data, an empty one as zero punches.
type CompareInput struct {
	PlanID          int64        `json:"plan_id" binding:"required"`
	PlanType        int          `json:"plan_type" binding:"required"`
	UserID          int64        `json:"user_id" binding:"required"`
	OpponentUserID  int64        `json:"opponent_user_id" binding:"required"`
	UserPunches     []PunchInput `json:"user_punches" binding:"omitempty,dive"`
	OpponentPunches []PunchInput `json:"opponent_punches" binding:"omitempty,dive"`
}

// CompareOutput is the verdict two attempts would receive
type CompareOutput struct {
	Expected      []scoring.Label `json:"expected"`
	Verdict       scoring.Verdict `json:"verdict"`
	UserScore     *ScoreOutput    `json:"user_score"`
	OpponentScore *ScoreOutput    `json:"opponent_score"`
}

// Compare scores two punch lists against a plan without storing anything
func (u *battleUsecase) Compare(ctx context.Context, input *CompareInput) (*CompareOutput, error) {
	if input == nil || input.UserID == input.OpponentUserID {
		return nil, ErrInvalidRequest
	}

	expected, err := u.expander.Expand(ctx, input.PlanID, scoring.PlanType(input.PlanType))
	if err != nil {
		return nil, fmt.Errorf("failed to expand plan %d: %w", input.PlanID, err)
	}

	userScore := previewScore(expected, input.UserPunches)
	opponentScore := previewScore(expected, input.OpponentPunches)

	return &CompareOutput{
		Expected:      expected,
		Verdict:       scoring.Decide(userScore, opponentScore, input.UserID, input.OpponentUserID),
		UserScore:     toScoreOutput(userScore),
		OpponentScore: toScoreOutput(opponentScore),
	}, nil
}

func previewScore(expected []scoring.Label, punches []PunchInput) scoring.MatchScore {
	if punches == nil {
		return scoring.NoDataScore()
	}
	converted := make([]scoring.Punch, len(punches))
	for i, p := range punches {
		converted[i] = scoring.Punch{Hand: p.Hand, Type: p.Type, Speed: p.Speed, Force: p.Force}
	}
	return scoring.Score(scoring.BattleCatalog, expected, converted)
}
