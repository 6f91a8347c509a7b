package memory

import (
	"regexp"
	"strings"

	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/internal/stringutils"
)

type (
	// Candidate is a memory extracted from a turn before scoring.
	Candidate struct {
		Content  string
		Category entity.MemoryCategory
	}

	categoryExtractor struct {
		category entity.MemoryCategory
		patterns []*regexp.Regexp
	}
)

// extractors are first-person statement patterns per category. Goal patterns
// run before fact patterns so "I want to ..." is not swallowed by "I ...".
var extractors = []categoryExtractor{
	{
		category: entity.MemoryCategoryGoal,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bI want to .+`),
			regexp.MustCompile(`(?i)\bI'?m trying to .+`),
			regexp.MustCompile(`(?i)\bmy goal is .+`),
			regexp.MustCompile(`(?i)\bI hope to .+`),
			regexp.MustCompile(`(?i)\bI need to .+`),
		},
	},
	{
		category: entity.MemoryCategoryPreference,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bI (?:really )?(?:like|love|enjoy|prefer) .+`),
			regexp.MustCompile(`(?i)\bI (?:don'?t like|hate|dislike) .+`),
			regexp.MustCompile(`(?i)\bmy favorite .+ is .+`),
			regexp.MustCompile(`(?i)\bI (?:usually|always) .+`),
		},
	},
	{
		category: entity.MemoryCategoryFact,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bI am (?:a|an|from) .+`),
			regexp.MustCompile(`(?i)\bI work as .+`),
			regexp.MustCompile(`(?i)\bI live in .+`),
			regexp.MustCompile(`(?i)\bI study .+`),
			regexp.MustCompile(`(?i)\bI'?m learning .+`),
		},
	},
	{
		category: entity.MemoryCategoryEmotionalEvent,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bI(?:'m| am| feel) (?:excited|frustrated|confused|happy|sad|worried) .+`),
			regexp.MustCompile(`(?i)\bthat(?:'s| was) (?:amazing|terrible|confusing|helpful|difficult) .+`),
		},
	},
}

// Reply-side markers: a correcting reply records what the user got wrong, an
// acknowledged explanation records ground the user has already covered.
var (
	correctionMarkers    = []string{"actually", "correct", "not quite"}
	understandingMarkers = []string{"i understand", "makes sense", "i see", "thank you"}
)

const snippetLimitRunes = 50

// ExtractFromTurn pulls memory candidates out of one completed exchange: the
// user-side statements plus what the character's reply reveals about the turn.
func ExtractFromTurn(userMessage, reply string) []Candidate {
	candidates := Extract(userMessage)

	lowerReply := strings.ToLower(reply)
	for _, marker := range correctionMarkers {
		if !strings.Contains(lowerReply, marker) {
			continue
		}
		candidates = append(candidates, Candidate{
			Content:  cleanContent("Corrected user about: " + stringutils.Truncate(userMessage, snippetLimitRunes)),
			Category: entity.MemoryCategoryFact,
		})
		break
	}

	if reply != "" {
		lowerUser := strings.ToLower(userMessage)
		for _, marker := range understandingMarkers {
			if !strings.Contains(lowerUser, marker) {
				continue
			}
			candidates = append(candidates, Candidate{
				Content:  cleanContent("User understood: " + stringutils.Truncate(reply, snippetLimitRunes)),
				Category: entity.MemoryCategoryEmotionalEvent,
			})
			break
		}
	}

	return candidates
}

// Extract pulls memory candidates out of a user message. Each category
// contributes at most one candidate per turn; the first pattern match wins.
func Extract(userMessage string) []Candidate {
	var candidates []Candidate
	seen := make(map[string]struct{})

	for _, extractor := range extractors {
		for _, pattern := range extractor.patterns {
			match := pattern.FindString(userMessage)
			if match == "" {
				continue
			}
			content := cleanContent(match)
			if _, dup := seen[content]; dup {
				continue
			}
			seen[content] = struct{}{}
			candidates = append(candidates, Candidate{
				Content:  content,
				Category: extractor.category,
			})
			break
		}
	}
	return candidates
}

func cleanContent(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	return stringutils.Truncate(content, 200)
}
