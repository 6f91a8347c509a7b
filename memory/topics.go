package memory

import (
	"strings"
)

// topicKeywords classifies memory content into coarse topic tags. Retrieval
// pays a small bonus to memories whose tags overlap the current message.
var topicKeywords = map[string][]string{
	"finnish_language": {
		"finnish", "suomi", "pronunciation", "grammar", "vocabulary",
		"tervetuloa", "kiitos", "hei", "moi", "sisu", "sauna",
	},
	"learning_methods": {
		"study", "practice", "learn", "understand", "remember",
		"flashcards", "exercises", "homework", "repeat",
	},
	"technology": {
		"computer", "programming", "data", "python", "code",
		"software", "app", "website", "ai", "algorithm",
	},
	"health_fitness": {
		"exercise", "running", "gym", "nutrition", "diet",
		"training", "workout", "health", "fitness",
	},
	"family_personal": {
		"family", "mother", "father", "child", "home", "personal",
		"relationship", "friend", "brother", "sister",
	},
	"school_work": {
		"school", "work", "job", "teacher", "homework", "class",
		"meeting", "project", "assignment",
	},
}

// topicOrder keeps ExtractTopics deterministic; map iteration order is not.
var topicOrder = []string{
	"finnish_language",
	"learning_methods",
	"technology",
	"health_fitness",
	"family_personal",
	"school_work",
}

// ExtractTopics returns the topic tags whose keywords occur in text.
func ExtractTopics(text string) []string {
	lower := strings.ToLower(text)

	var topics []string
	for _, topic := range topicOrder {
		for _, keyword := range topicKeywords[topic] {
			if strings.Contains(lower, keyword) {
				topics = append(topics, topic)
				break
			}
		}
	}
	return topics
}
