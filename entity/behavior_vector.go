package entity

// Dimension names one bounded personality trait. Every dimension is scored on
// a continuous [0,1] scale at runtime.
type Dimension string

const (
	DimensionPatience   Dimension = "patience"
	DimensionFormality  Dimension = "formality"
	DimensionEnthusiasm Dimension = "enthusiasm"
	DimensionHumor      Dimension = "humor"
	DimensionConfidence Dimension = "confidence"
	DimensionVerbosity  Dimension = "verbosity"
)

// Dimensions is the canonical ordering used wherever a BehaviorVector is
// flattened into a slice. Keep in sync with BehaviorVector.Slice.
var Dimensions = []Dimension{
	DimensionPatience,
	DimensionFormality,
	DimensionEnthusiasm,
	DimensionHumor,
	DimensionConfidence,
	DimensionVerbosity,
}

type (
	// BehaviorVector holds one value per behavior dimension. It is used both
	// for character baselines (values in [0,1]) and for adaptation deltas
	// (values in [-1,1]).
	BehaviorVector struct {
		Patience   float64 `json:"patience" yaml:"patience"`
		Formality  float64 `json:"formality" yaml:"formality"`
		Enthusiasm float64 `json:"enthusiasm" yaml:"enthusiasm"`
		Humor      float64 `json:"humor" yaml:"humor"`
		Confidence float64 `json:"confidence" yaml:"confidence"`
		Verbosity  float64 `json:"verbosity" yaml:"verbosity"`
	}

	// PatienceLevel is the ordinal presentation of the patience dimension.
	PatienceLevel string
)

const (
	PatienceVeryLow  PatienceLevel = "very-low"
	PatienceLow      PatienceLevel = "low"
	PatienceModerate PatienceLevel = "moderate"
	PatienceHigh     PatienceLevel = "high"
	PatienceVeryHigh PatienceLevel = "very-high"
)

var patienceScale = map[PatienceLevel]float64{
	PatienceVeryLow:  0.1,
	PatienceLow:      0.3,
	PatienceModerate: 0.5,
	PatienceHigh:     0.7,
	PatienceVeryHigh: 0.9,
}

// Value maps the ordinal onto the continuous scale. Unknown levels map to
// moderate.
func (p PatienceLevel) Value() float64 {
	if v, ok := patienceScale[p]; ok {
		return v
	}
	return patienceScale[PatienceModerate]
}

// PatienceLevelOf buckets a continuous patience value back into its ordinal.
func PatienceLevelOf(v float64) PatienceLevel {
	switch {
	case v < 0.2:
		return PatienceVeryLow
	case v < 0.4:
		return PatienceLow
	case v < 0.6:
		return PatienceModerate
	case v < 0.8:
		return PatienceHigh
	default:
		return PatienceVeryHigh
	}
}

// Slice flattens the vector following the Dimensions ordering.
func (v BehaviorVector) Slice() []float64 {
	return []float64{v.Patience, v.Formality, v.Enthusiasm, v.Humor, v.Confidence, v.Verbosity}
}

// VectorFromSlice is the inverse of Slice. Extra elements are ignored, missing
// ones are zero.
func VectorFromSlice(values []float64) BehaviorVector {
	var v BehaviorVector
	fields := []*float64{&v.Patience, &v.Formality, &v.Enthusiasm, &v.Humor, &v.Confidence, &v.Verbosity}
	for i, f := range fields {
		if i < len(values) {
			*f = values[i]
		}
	}
	return v
}

// Get returns the value of a single dimension.
func (v BehaviorVector) Get(d Dimension) float64 {
	switch d {
	case DimensionPatience:
		return v.Patience
	case DimensionFormality:
		return v.Formality
	case DimensionEnthusiasm:
		return v.Enthusiasm
	case DimensionHumor:
		return v.Humor
	case DimensionConfidence:
		return v.Confidence
	case DimensionVerbosity:
		return v.Verbosity
	}
	return 0
}

// Clamped bounds every dimension to [min,max].
func (v BehaviorVector) Clamped(min, max float64) BehaviorVector {
	values := v.Slice()
	for i, x := range values {
		if x < min {
			values[i] = min
		} else if x > max {
			values[i] = max
		}
	}
	return VectorFromSlice(values)
}

// IsZero reports whether every dimension is within eps of zero.
func (v BehaviorVector) IsZero(eps float64) bool {
	for _, x := range v.Slice() {
		if x > eps || x < -eps {
			return false
		}
	}
	return true
}

// Validate checks every dimension against [0,1]. Deltas are validated by the
// behavior adapter instead, since they may be negative.
func (v BehaviorVector) Validate() error {
	for i, x := range v.Slice() {
		if x < 0 || x > 1 {
			return errInvalidDimension(Dimensions[i], x)
		}
	}
	return nil
}
