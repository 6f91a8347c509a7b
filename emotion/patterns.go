package emotion

import (
	"github.com/cymond/educhat/entity"
)

type (
	weightedTrigger struct {
		phrase string
		weight float64
	}

	categoryPatterns struct {
		emotion  entity.Emotion
		triggers []weightedTrigger
	}
)

// negators invert or cancel a trigger that immediately follows them.
var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"dont":    {},
	"don't":   {},
	"isnt":    {},
	"isn't":   {},
	"wasnt":   {},
	"wasn't":  {},
	"aint":    {},
	"ain't":   {},
	"hardly":  {},
	"barely":  {},
	"without": {},
}

// defaultPatterns is a fixed slice, not a map: detection iterates it in
// declared order so the same input always produces the same scores.
func defaultPatterns() []categoryPatterns {
	return []categoryPatterns{
		{
			emotion: entity.EmotionFrustrated,
			triggers: []weightedTrigger{
				{phrase: "frustrated", weight: 0.6},
				{phrase: "frustrating", weight: 0.5},
				{phrase: "hate this", weight: 0.6},
				{phrase: "give up", weight: 0.5},
				{phrase: "not working", weight: 0.5},
				{phrase: "doesn't work", weight: 0.5},
				{phrase: "annoying", weight: 0.5},
				{phrase: "stuck", weight: 0.4},
				{phrase: "ugh", weight: 0.4},
				{phrase: "this is hard", weight: 0.4},
				{phrase: "difficult", weight: 0.3},
			},
		},
		{
			emotion: entity.EmotionOverwhelmed,
			triggers: []weightedTrigger{
				{phrase: "overwhelmed", weight: 0.7},
				{phrase: "overwhelming", weight: 0.6},
				{phrase: "can't keep up", weight: 0.6},
				{phrase: "too much", weight: 0.5},
				{phrase: "too fast", weight: 0.5},
				{phrase: "slow down", weight: 0.5},
				{phrase: "drowning", weight: 0.5},
				{phrase: "so lost", weight: 0.4},
			},
		},
		{
			emotion: entity.EmotionConfused,
			triggers: []weightedTrigger{
				{phrase: "don't understand", weight: 0.6},
				{phrase: "confused", weight: 0.5},
				{phrase: "confusing", weight: 0.5},
				{phrase: "makes no sense", weight: 0.5},
				{phrase: "what do you mean", weight: 0.5},
				{phrase: "unclear", weight: 0.4},
				{phrase: "huh", weight: 0.4},
				{phrase: "explain", weight: 0.3},
				{phrase: "what", weight: 0.15},
				{phrase: "why", weight: 0.15},
				{phrase: "how", weight: 0.15},
			},
		},
		{
			emotion: entity.EmotionBored,
			triggers: []weightedTrigger{
				{phrase: "boring", weight: 0.6},
				{phrase: "bored", weight: 0.6},
				{phrase: "meh", weight: 0.5},
				{phrase: "yawn", weight: 0.5},
				{phrase: "tired of", weight: 0.4},
				{phrase: "whatever", weight: 0.4},
			},
		},
		{
			emotion: entity.EmotionExcited,
			triggers: []weightedTrigger{
				{phrase: "excited", weight: 0.6},
				{phrase: "awesome", weight: 0.5},
				{phrase: "amazing", weight: 0.5},
				{phrase: "love this", weight: 0.5},
				{phrase: "love it", weight: 0.5},
				{phrase: "can't wait", weight: 0.5},
				{phrase: "wonderful", weight: 0.4},
				{phrase: "great", weight: 0.4},
				{phrase: "cool", weight: 0.4},
				{phrase: "fun", weight: 0.3},
			},
		},
		{
			emotion: entity.EmotionEngaged,
			triggers: []weightedTrigger{
				{phrase: "tell me more", weight: 0.5},
				{phrase: "interesting", weight: 0.4},
				{phrase: "makes sense", weight: 0.4},
				{phrase: "thank you", weight: 0.3},
				{phrase: "got it", weight: 0.3},
				{phrase: "i see", weight: 0.3},
				{phrase: "what about", weight: 0.3},
				{phrase: "let's", weight: 0.3},
			},
		},
	}
}

// dullAcknowledgments are the short replies that signal disengagement when
// they make up the whole message.
var dullAcknowledgments = map[string]struct{}{
	"ok":   {},
	"okay": {},
	"sure": {},
	"fine": {},
	"k":    {},
}
