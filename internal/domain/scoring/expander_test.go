package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPlanReader is a mock implementation of PlanReader
type MockPlanReader struct {
	mock.Mock
}

func (m *MockPlanReader) ComboCodes(ctx context.Context, comboID int64) ([]PunchCode, error) {
	args := m.Called(ctx, comboID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PunchCode), args.Error(1)
}

func (m *MockPlanReader) ComboSetCodes(ctx context.Context, comboSetID int64) ([][]PunchCode, error) {
	args := m.Called(ctx, comboSetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]PunchCode), args.Error(1)
}

func TestExpandCodes(t *testing.T) {
	t.Run("maps every code in order", func(t *testing.T) {
		labels, err := ExpandCodes(BattleCatalog, []PunchCode{"1", "2", "3", "DL"})

		assert.NoError(t, err)
		assert.Equal(t, []Label{"LJ/RJ", "LS/RS", "LH", "LD"}, labels)
	})

	t.Run("empty combo", func(t *testing.T) {
		labels, err := ExpandCodes(BattleCatalog, nil)

		assert.NoError(t, err)
		assert.Empty(t, labels)
	})

	t.Run("unknown code fails the whole combo", func(t *testing.T) {
		labels, err := ExpandCodes(BattleCatalog, []PunchCode{"1", "9", "3"})

		assert.ErrorIs(t, err, ErrUnknownPunchCode)
		assert.Contains(t, err.Error(), "position 1")
		assert.Nil(t, labels)
	})
}

func TestExpandComboSet(t *testing.T) {
	t.Run("concatenates members in order", func(t *testing.T) {
		labels, err := ExpandComboSet(AccuracyCatalog, [][]PunchCode{{"1", "2"}, {"3"}, {"1"}})

		assert.NoError(t, err)
		assert.Equal(t, []Label{"J", "S", "LH", "J"}, labels)
	})

	t.Run("no members", func(t *testing.T) {
		labels, err := ExpandComboSet(BattleCatalog, nil)

		assert.NoError(t, err)
		assert.Empty(t, labels)
	})

	t.Run("bad member", func(t *testing.T) {
		_, err := ExpandComboSet(BattleCatalog, [][]PunchCode{{"1"}, {"X"}})

		assert.ErrorIs(t, err, ErrUnknownPunchCode)
		assert.Contains(t, err.Error(), "combo 1 of set")
	})
}

func TestExpander_Expand(t *testing.T) {
	ctx := context.Background()

	t.Run("combo", func(t *testing.T) {
		reader := new(MockPlanReader)
		reader.On("ComboCodes", mock.Anything, int64(7)).Return([]PunchCode{"1", "4", "5"}, nil)

		labels, err := NewExpander(reader, BattleCatalog).Expand(ctx, 7, PlanTypeCombo)

		assert.NoError(t, err)
		assert.Equal(t, []Label{"LJ/RJ", "RH", "LU"}, labels)
		reader.AssertExpectations(t)
	})

	t.Run("combo set", func(t *testing.T) {
		reader := new(MockPlanReader)
		reader.On("ComboSetCodes", mock.Anything, int64(2)).
			Return([][]PunchCode{{"1", "2"}, {"DR"}}, nil)

		labels, err := NewExpander(reader, BattleCatalog).Expand(ctx, 2, PlanTypeComboSet)

		assert.NoError(t, err)
		assert.Equal(t, []Label{"LJ/RJ", "LS/RS", "RD"}, labels)
		reader.AssertNotCalled(t, "ComboCodes", mock.Anything, mock.Anything)
	})

	t.Run("workout is unsupported", func(t *testing.T) {
		reader := new(MockPlanReader)

		labels, err := NewExpander(reader, BattleCatalog).Expand(ctx, 1, PlanTypeWorkout)

		assert.ErrorIs(t, err, ErrUnsupportedPlanType)
		assert.Contains(t, err.Error(), "workout")
		assert.Nil(t, labels)
		reader.AssertExpectations(t)
	})

	t.Run("unknown plan type", func(t *testing.T) {
		_, err := NewExpander(new(MockPlanReader), BattleCatalog).Expand(ctx, 1, PlanType(9))

		assert.ErrorIs(t, err, ErrUnsupportedPlanType)
	})

	t.Run("reader error", func(t *testing.T) {
		reader := new(MockPlanReader)
		expectedErr := errors.New("database error")
		reader.On("ComboCodes", mock.Anything, int64(3)).Return(nil, expectedErr)

		_, err := NewExpander(reader, BattleCatalog).Expand(ctx, 3, PlanTypeCombo)

		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestPlanType_String(t *testing.T) {
	assert.Equal(t, "combo", PlanTypeCombo.String())
	assert.Equal(t, "combo_set", PlanTypeComboSet.String())
	assert.Equal(t, "workout", PlanTypeWorkout.String())
	assert.Equal(t, "plan_type(1)", PlanType(1).String())
}
