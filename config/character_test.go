package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/entity"
)

const ainoYaml = `
id: aino
name: Aino
archetype: cultural_teacher
age: 35
occupation: Finnish language teacher
culturalBackground: Finnish
patience: very-high
formality: 0.6
enthusiasm: 0.8
humor: 0.3
confidence: 0.9
verbosity: 0.5
knowledgeDomains:
  - finnish_language
  - finnish_culture
conversationStarters:
  - "Tervetuloa! What would you like to learn about Finnish today?"
adaptationHints:
  frustrated: "Be extra patient and break concepts into smaller steps."
  bored: "Introduce fun Finnish words or cultural stories."
`

func writeCharacterFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "aino.character.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadCharacterFromFile(t *testing.T) {
	conf, err := config.LoadCharacterFromFile(writeCharacterFile(t, ainoYaml))
	require.NoError(t, err)

	assert.Equal(t, "aino", conf.ID)
	assert.Equal(t, "Aino", conf.Name)
	assert.Equal(t, "very-high", conf.Patience)
	assert.InDelta(t, 0.6, conf.Formality, 1e-9)

	character, err := conf.ToCharacter()
	require.NoError(t, err)
	assert.InDelta(t, 0.9, character.Baseline.Patience, 1e-9, "ordinal patience becomes continuous")
	assert.Equal(t, entity.PatienceVeryHigh, character.PatienceLevel())
	assert.Contains(t, character.AdaptationHints[entity.EmotionBored], "fun Finnish words")
	assert.Equal(t, []string{"finnish_language", "finnish_culture"}, character.KnowledgeDomains)
}

func TestLoadCharacterFromFile_Missing(t *testing.T) {
	_, err := config.LoadCharacterFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestToCharacter_DefaultsIDToName(t *testing.T) {
	conf := config.CharacterConfig{
		Name:       "Mase",
		Archetype:  "peer_educator",
		Patience:   "moderate",
		Formality:  0.2,
		Enthusiasm: 0.6,
		Humor:      0.8,
		Confidence: 0.7,
		Verbosity:  0.3,
	}
	character, err := conf.ToCharacter()
	require.NoError(t, err)
	assert.Equal(t, "Mase", character.ID)
}

func TestToCharacter_RejectsOutOfRangeDimensions(t *testing.T) {
	conf := config.CharacterConfig{
		Name:      "Broken",
		Archetype: "mentor",
		Patience:  "moderate",
		Formality: 1.4,
	}
	_, err := conf.ToCharacter()
	assert.Error(t, err)
}

func TestLoadCharactersFromFiles(t *testing.T) {
	file := writeCharacterFile(t, ainoYaml)
	configs, err := config.LoadCharactersFromFiles([]string{file})
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Aino", configs[0].Name)
}
