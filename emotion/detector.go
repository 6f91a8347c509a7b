package emotion

import (
	"strings"
	"unicode/utf8"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/internal/sliceutils"
)

type (
	// Detector classifies a user message into an emotional state. The lexical
	// heuristic lives behind this interface so a statistical classifier can
	// replace it without touching the behavior adapter or downstream layers.
	Detector interface {
		Detect(text string, history []entity.Turn) entity.EmotionalState
	}

	// LexicalDetector scores every category in parallel over a weighted,
	// negation-aware trigger lexicon. Pure and deterministic: same text and
	// history always yield the same state.
	LexicalDetector struct {
		conf     *config.EmotionConfig
		patterns []categoryPatterns
	}
)

var (
	_ Detector = (*LexicalDetector)(nil)
)

func NewLexicalDetector(conf *config.EmotionConfig) *LexicalDetector {
	if conf == nil {
		conf = config.NewEmotionConfig()
	}
	return &LexicalDetector{
		conf:     conf,
		patterns: defaultPatterns(),
	}
}

func (d *LexicalDetector) Detect(text string, history []entity.Turn) entity.EmotionalState {
	lower := strings.ToLower(text)
	scores := make(map[entity.Emotion]float64, len(d.patterns))

	for _, category := range d.patterns {
		var score float64
		for _, trigger := range category.triggers {
			score += matchTrigger(lower, trigger)
		}
		scores[category.emotion] = score
	}

	d.applyHeuristics(lower, text, scores)
	d.applyHistoryBoost(lower, history, scores)

	// Exclamation emphasis strengthens whatever already leads.
	if exclamations := strings.Count(text, "!"); exclamations >= 2 {
		boost := min(float64(exclamations)*0.1, 0.2)
		if top := topEmotion(scores); top != entity.EmotionNeutral {
			scores[top] += boost
		}
	}

	best := topEmotion(scores)
	confidence := min(scores[best], 1.0)
	if best == entity.EmotionNeutral || confidence < d.conf.Threshold {
		return entity.Neutral()
	}

	return entity.EmotionalState{Emotion: best, Confidence: confidence}
}

// matchTrigger returns the trigger weight when the phrase occurs un-negated
// anywhere in the text. A negator within the two tokens before an occurrence
// cancels only that occurrence; later mentions still count.
func matchTrigger(lower string, trigger weightedTrigger) float64 {
	for offset := 0; ; {
		idx := strings.Index(lower[offset:], trigger.phrase)
		if idx < 0 {
			return 0
		}
		idx += offset
		if !negatedAt(lower, idx) {
			return trigger.weight
		}
		offset = idx + len(trigger.phrase)
	}
}

func negatedAt(lower string, idx int) bool {
	prefix := strings.Fields(lower[:idx])
	checked := 0
	for i := len(prefix) - 1; i >= 0 && checked < 2; i-- {
		word := strings.Trim(prefix[i], ",.!?;:")
		if _, ok := negators[word]; ok {
			return true
		}
		checked++
	}
	return false
}

func (d *LexicalDetector) applyHeuristics(lower, original string, scores map[entity.Emotion]float64) {
	// Stacked question marks read as confusion.
	if strings.Count(original, "?") > 1 {
		scores[entity.EmotionConfused] += 0.25
	}

	// A bare "ok"/"sure" style reply reads as disengagement.
	trimmed := strings.Trim(lower, " \t.!?")
	if _, ok := dullAcknowledgments[trimmed]; ok {
		scores[entity.EmotionBored] += 0.2
	}
}

// applyHistoryBoost nudges the previous turn's category when the current
// message is a short follow-up, disambiguating terse replies.
func (d *LexicalDetector) applyHistoryBoost(lower string, history []entity.Turn, scores map[entity.Emotion]float64) {
	if utf8.RuneCountInString(lower) >= d.conf.ShortMessageRunes {
		return
	}

	recent := sliceutils.Last(history, d.conf.HistoryWindow)
	for i := len(recent) - 1; i >= 0; i-- {
		turn := recent[i]
		if !turn.FromUser {
			continue
		}
		if turn.Emotion != "" && turn.Emotion != entity.EmotionNeutral {
			scores[turn.Emotion] += d.conf.FollowUpBoost
		}
		return
	}
}

// topEmotion resolves the highest score, breaking ties by the fixed category
// priority so failure states are never masked by milder positive signals.
func topEmotion(scores map[entity.Emotion]float64) entity.Emotion {
	best := entity.EmotionNeutral
	bestScore := 0.0
	for _, emotion := range entity.EmotionPriority {
		if emotion == entity.EmotionNeutral {
			continue
		}
		if scores[emotion] > bestScore {
			best = emotion
			bestScore = scores[emotion]
		}
	}
	return best
}
