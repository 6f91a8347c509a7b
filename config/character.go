package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/cymond/educhat/entity"
)

type CharacterConfig struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	Archetype          string `yaml:"archetype"`
	Age                int    `yaml:"age"`
	Occupation         string `yaml:"occupation"`
	CulturalBackground string `yaml:"culturalBackground"`

	// Patience is the ordinal level; the remaining dimensions are continuous.
	Patience   string  `yaml:"patience"`
	Formality  float64 `yaml:"formality"`
	Enthusiasm float64 `yaml:"enthusiasm"`
	Humor      float64 `yaml:"humor"`
	Confidence float64 `yaml:"confidence"`
	Verbosity  float64 `yaml:"verbosity"`

	KnowledgeDomains     []string          `yaml:"knowledgeDomains"`
	TeachingSpecialties  []string          `yaml:"teachingSpecialties"`
	ConversationStarters []string          `yaml:"conversationStarters"`
	AdaptationHints      map[string]string `yaml:"adaptationHints"`
}

// ToCharacter converts the file form into a validated profile entity.
func (c *CharacterConfig) ToCharacter() (*entity.Character, error) {
	hints := make(map[entity.Emotion]string, len(c.AdaptationHints))
	for emotion, hint := range c.AdaptationHints {
		hints[entity.Emotion(emotion)] = hint
	}

	character := &entity.Character{
		ID:                 c.ID,
		Name:               c.Name,
		Archetype:          c.Archetype,
		Age:                c.Age,
		Occupation:         c.Occupation,
		CulturalBackground: c.CulturalBackground,
		Baseline: entity.BehaviorVector{
			Patience:   entity.PatienceLevel(c.Patience).Value(),
			Formality:  c.Formality,
			Enthusiasm: c.Enthusiasm,
			Humor:      c.Humor,
			Confidence: c.Confidence,
			Verbosity:  c.Verbosity,
		},
		KnowledgeDomains:     c.KnowledgeDomains,
		TeachingSpecialties:  c.TeachingSpecialties,
		ConversationStarters: c.ConversationStarters,
		AdaptationHints:      hints,
	}
	if character.ID == "" {
		character.ID = character.Name
	}
	if err := character.Validate(); err != nil {
		return nil, err
	}
	return character, nil
}

func LoadCharacterFromFile(file string) (character CharacterConfig, err error) {
	var yamlBytes []byte
	if yamlBytes, err = os.ReadFile(file); err != nil {
		err = errors.Wrapf(err, "failed to read file %s", file)
		return
	}

	if err = yaml.Unmarshal(yamlBytes, &character); err != nil {
		err = errors.Wrapf(err, "failed to unmarshal file %s", file)
		return
	}

	return
}

func LoadCharactersFromFiles(files []string) ([]CharacterConfig, error) {
	characters := make([]CharacterConfig, 0, len(files))
	for _, file := range files {
		character, err := LoadCharacterFromFile(file)
		if err != nil {
			return nil, err
		}
		characters = append(characters, character)
	}
	return characters, nil
}
