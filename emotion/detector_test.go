package emotion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/emotion"
	"github.com/cymond/educhat/entity"
)

func TestLexicalDetector_Frustration(t *testing.T) {
	detector := emotion.NewLexicalDetector(nil)

	state := detector.Detect("I'm so frustrated with this!", nil)
	assert.Equal(t, entity.EmotionFrustrated, state.Emotion)
	assert.GreaterOrEqual(t, state.Confidence, config.NewEmotionConfig().Threshold)
	assert.LessOrEqual(t, state.Confidence, 1.0)
}

func TestLexicalDetector_Deterministic(t *testing.T) {
	detector := emotion.NewLexicalDetector(nil)
	history := []entity.Turn{
		{FromUser: true, Content: "this is hard", Emotion: entity.EmotionFrustrated},
		{FromUser: false, Content: "let's slow down"},
	}

	first := detector.Detect("what? how? why??", history)
	for i := 0; i < 50; i++ {
		again := detector.Detect("what? how? why??", history)
		require.Equal(t, first, again, "detection must be deterministic")
	}
}

func TestLexicalDetector_NeutralBelowThreshold(t *testing.T) {
	detector := emotion.NewLexicalDetector(nil)

	state := detector.Detect("The lesson covers chapter three tomorrow.", nil)
	assert.Equal(t, entity.EmotionNeutral, state.Emotion)
	assert.Equal(t, 0.0, state.Confidence)
}

func TestLexicalDetector_PriorityOrder(t *testing.T) {
	detector := emotion.NewLexicalDetector(nil)

	// Both a failure state and a positive state fire; the failure state must
	// win even though the positive score is at least as high.
	state := detector.Detect("this is awesome but so frustrating, I love it and hate this", nil)
	assert.Equal(t, entity.EmotionFrustrated, state.Emotion)
}

func TestLexicalDetector_NegationAware(t *testing.T) {
	detector := emotion.NewLexicalDetector(nil)

	state := detector.Detect("not great, this still feels off", nil)
	assert.NotEqual(t, entity.EmotionExcited, state.Emotion)

	state = detector.Detect("this is not confusing at all, I follow you", nil)
	assert.NotEqual(t, entity.EmotionConfused, state.Emotion)
}

func TestLexicalDetector_NegationCancelsOnlyTheNegatedMention(t *testing.T) {
	detector := emotion.NewLexicalDetector(nil)

	// The first mention is negated; the repeated one still counts.
	state := detector.Detect("not stuck, but I'm still stuck", nil)
	assert.Equal(t, entity.EmotionFrustrated, state.Emotion)
}

func TestLexicalDetector_QuestionMarksReadAsConfusion(t *testing.T) {
	detector := emotion.NewLexicalDetector(nil)

	state := detector.Detect("what?? how??", nil)
	assert.Equal(t, entity.EmotionConfused, state.Emotion)
}

func TestLexicalDetector_ShortFollowUpUsesHistory(t *testing.T) {
	detector := emotion.NewLexicalDetector(nil)
	history := []entity.Turn{
		{FromUser: true, Content: "I don't understand this at all", Emotion: entity.EmotionConfused},
	}

	withHistory := detector.Detect("and this?", history)
	assert.Equal(t, entity.EmotionConfused, withHistory.Emotion)
}

func TestLexicalDetector_DullAcknowledgment(t *testing.T) {
	conf := config.NewEmotionConfig()
	conf.Threshold = 0.2
	detector := emotion.NewLexicalDetector(conf)

	state := detector.Detect("ok.", nil)
	assert.Equal(t, entity.EmotionBored, state.Emotion)
}

func TestLexicalDetector_ConfidenceBounds(t *testing.T) {
	detector := emotion.NewLexicalDetector(nil)

	inputs := []string{
		"",
		"frustrated frustrating stuck annoying hate this give up ugh difficult!!!",
		"awesome amazing cool great wonderful fun love this",
		"??",
		"ok",
	}
	for _, input := range inputs {
		state := detector.Detect(input, nil)
		assert.GreaterOrEqual(t, state.Confidence, 0.0, "input %q", input)
		assert.LessOrEqual(t, state.Confidence, 1.0, "input %q", input)
	}
}
