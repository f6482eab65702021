package labels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed words.yaml
var defaultWords []byte

// Words is the raw material labels are built from.
type Words struct {
	Prefixes   []string `yaml:"prefixes"`
	Nouns      []string `yaml:"nouns"`
	Adjectives []string `yaml:"adjectives"`
	Verbs      []string `yaml:"verbs"`
}

// Default returns the embedded word list.
func Default() *Words {
	words, err := Parse(defaultWords)
	if err != nil {
		panic(fmt.Sprintf("labels: embedded word list is broken: %s", err))
	}
	return words
}

// Load reads a word list from path, or returns the embedded one when path is empty.
func Load(path string) (*Words, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML word list and normalizes every entry to lower case.
func Parse(data []byte) (*Words, error) {
	words := new(Words)
	if err := yaml.Unmarshal(data, words); err != nil {
		return nil, fmt.Errorf("failed to unmarshal word list: %w", err)
	}

	words.Prefixes = normalize(words.Prefixes)
	words.Nouns = normalize(words.Nouns)
	words.Adjectives = normalize(words.Adjectives)
	words.Verbs = normalize(words.Verbs)

	if len(words.Nouns) == 0 {
		return nil, errors.New("word list has no nouns")
	}
	if len(words.Verbs) == 0 {
		return nil, errors.New("word list has no verbs")
	}
	return words, nil
}

func normalize(entries []string) []string {
	result := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		result = append(result, entry)
	}
	return result
}
