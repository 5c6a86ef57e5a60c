package scoring

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupportedPlanType is returned for plan types the engine cannot score (workouts).
var ErrUnsupportedPlanType = errors.New("unsupported plan type")

// PlanType mirrors the battle type_id column.
type PlanType int

const (
	PlanTypeCombo    PlanType = 3
	PlanTypeComboSet PlanType = 4
	PlanTypeWorkout  PlanType = 5
)

// String returns the plan type name.
func (t PlanType) String() string {
	switch t {
	case PlanTypeCombo:
		return "combo"
	case PlanTypeComboSet:
		return "combo_set"
	case PlanTypeWorkout:
		return "workout"
	default:
		return fmt.Sprintf("plan_type(%d)", int(t))
	}
}

// PlanReader supplies combo definitions. Implemented by the storage layer.
type PlanReader interface {
	// ComboCodes returns the ordered punch codes of a combo.
	ComboCodes(ctx context.Context, comboID int64) ([]PunchCode, error)

	// ComboSetCodes returns the ordered punch codes of each member combo, in set order.
	ComboSetCodes(ctx context.Context, comboSetID int64) ([][]PunchCode, error)
}

// ExpandCodes maps every code through the catalog. A single unknown code fails
// the whole expansion; skipping it would shift every later position.
func ExpandCodes(catalog Catalog, codes []PunchCode) ([]Label, error) {
	labels := make([]Label, 0, len(codes))
	for i, code := range codes {
		label, err := catalog.Label(code)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// ExpandComboSet concatenates the expansion of each member combo in order.
func ExpandComboSet(catalog Catalog, combos [][]PunchCode) ([]Label, error) {
	labels := make([]Label, 0)
	for i, codes := range combos {
		expanded, err := ExpandCodes(catalog, codes)
		if err != nil {
			return nil, fmt.Errorf("combo %d of set: %w", i, err)
		}
		labels = append(labels, expanded...)
	}
	return labels, nil
}

// Expander turns a battle plan into the expected label sequence.
type Expander struct {
	reader  PlanReader
	catalog Catalog
}

// NewExpander creates an Expander reading plans from reader and labelling with catalog.
func NewExpander(reader PlanReader, catalog Catalog) *Expander {
	return &Expander{reader: reader, catalog: catalog}
}

// Expand returns the expected labels for the plan.
func (e *Expander) Expand(ctx context.Context, planID int64, planType PlanType) ([]Label, error) {
	switch planType {
	case PlanTypeCombo:
		codes, err := e.reader.ComboCodes(ctx, planID)
		if err != nil {
			return nil, fmt.Errorf("failed to read combo %d: %w", planID, err)
		}
		return ExpandCodes(e.catalog, codes)
	case PlanTypeComboSet:
		combos, err := e.reader.ComboSetCodes(ctx, planID)
		if err != nil {
			return nil, fmt.Errorf("failed to read combo set %d: %w", planID, err)
		}
		return ExpandComboSet(e.catalog, combos)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlanType, planType)
	}
}
