package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cymond/educhat/entity"
)

func TestPatienceLevelMapping(t *testing.T) {
	assert.InDelta(t, 0.1, entity.PatienceVeryLow.Value(), 1e-9)
	assert.InDelta(t, 0.5, entity.PatienceModerate.Value(), 1e-9)
	assert.InDelta(t, 0.9, entity.PatienceVeryHigh.Value(), 1e-9)
	assert.InDelta(t, 0.5, entity.PatienceLevel("garbage").Value(), 1e-9, "unknown levels fall back to moderate")

	// Bucketing is the inverse of the scale.
	for _, level := range []entity.PatienceLevel{
		entity.PatienceVeryLow,
		entity.PatienceLow,
		entity.PatienceModerate,
		entity.PatienceHigh,
		entity.PatienceVeryHigh,
	} {
		assert.Equal(t, level, entity.PatienceLevelOf(level.Value()))
	}
}

func TestBehaviorVectorSliceRoundTrip(t *testing.T) {
	v := entity.BehaviorVector{
		Patience: 0.1, Formality: 0.2, Enthusiasm: 0.3,
		Humor: 0.4, Confidence: 0.5, Verbosity: 0.6,
	}
	require.Len(t, v.Slice(), len(entity.Dimensions))
	assert.Equal(t, v, entity.VectorFromSlice(v.Slice()))

	for i, d := range entity.Dimensions {
		assert.InDelta(t, v.Slice()[i], v.Get(d), 1e-9)
	}
}

func TestBehaviorVectorClampAndValidate(t *testing.T) {
	v := entity.BehaviorVector{Patience: 1.4, Humor: -0.2, Confidence: 0.5}
	clamped := v.Clamped(0, 1)
	assert.InDelta(t, 1.0, clamped.Patience, 1e-9)
	assert.InDelta(t, 0.0, clamped.Humor, 1e-9)
	assert.InDelta(t, 0.5, clamped.Confidence, 1e-9)

	assert.Error(t, v.Validate())
	assert.NoError(t, clamped.Validate())
}

func TestAdaptedStateEffectiveIsBounded(t *testing.T) {
	state := entity.AdaptedState{Delta: entity.BehaviorVector{Patience: 0.5, Humor: -0.9}}
	baseline := entity.BehaviorVector{Patience: 0.9, Humor: 0.3, Confidence: 0.8}

	effective := state.Effective(baseline)
	assert.InDelta(t, 1.0, effective.Patience, 1e-9)
	assert.InDelta(t, 0.0, effective.Humor, 1e-9)
	assert.InDelta(t, 0.8, effective.Confidence, 1e-9)
	assert.NoError(t, effective.Validate())
}
