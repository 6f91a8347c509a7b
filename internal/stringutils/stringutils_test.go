package stringutils_test

import (
	"testing"

	"github.com/cymond/educhat/internal/stringutils"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := stringutils.Tokenize("I love Finnish, really!")
	assert.Equal(t, []string{"i", "love", "finnish", "really"}, tokens)
}

func TestJaccardOverlap(t *testing.T) {
	assert.Equal(t, 1.0, stringutils.JaccardOverlap("I love sauna", "i love SAUNA"))
	assert.Equal(t, 0.0, stringutils.JaccardOverlap("apples", "oranges"))
	assert.Equal(t, 0.0, stringutils.JaccardOverlap("", "anything"))

	// Partial overlap stays strictly between 0 and 1.
	v := stringutils.JaccardOverlap("I love sauna", "I love coffee")
	assert.Greater(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", stringutils.Truncate("abc", 10))
	assert.Equal(t, "ab...", stringutils.Truncate("abcdef", 2))
	assert.Equal(t, "", stringutils.Truncate("abc", 0))
}
