package entity

type (
	// Emotion is one of the fixed user emotional categories the detector can
	// produce.
	Emotion string

	// EmotionalState is an Emotion plus the detector's confidence. It is
	// produced fresh per user message and never persisted on its own.
	EmotionalState struct {
		Emotion    Emotion `json:"emotion"`
		Confidence float64 `json:"confidence"`
	}
)

const (
	EmotionNeutral     Emotion = "neutral"
	EmotionFrustrated  Emotion = "frustrated"
	EmotionExcited     Emotion = "excited"
	EmotionConfused    Emotion = "confused"
	EmotionBored       Emotion = "bored"
	EmotionEngaged     Emotion = "engaged"
	EmotionOverwhelmed Emotion = "overwhelmed"
)

// EmotionPriority breaks score ties. Failure states come first so that a
// frustrated signal is never masked by an equally strong positive one.
var EmotionPriority = []Emotion{
	EmotionFrustrated,
	EmotionOverwhelmed,
	EmotionConfused,
	EmotionBored,
	EmotionExcited,
	EmotionEngaged,
	EmotionNeutral,
}

// Neutral is the zero-confidence fallback state.
func Neutral() EmotionalState {
	return EmotionalState{Emotion: EmotionNeutral, Confidence: 0}
}

func (s EmotionalState) IsNeutral() bool {
	return s.Emotion == EmotionNeutral || s.Emotion == ""
}

// Rank returns the tie-break rank of e; lower wins.
func (e Emotion) Rank() int {
	for i, p := range EmotionPriority {
		if p == e {
			return i
		}
	}
	return len(EmotionPriority)
}
