// Package taxonomy provides the static catalog of canonical skill names,
// their categories, and known synonyms. The taxonomy is loaded once and
// shared read-only by the extraction and scoring layers.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed taxonomy.json
var defaultTaxonomyJSON []byte

// document is the on-disk shape of the taxonomy file.
type document struct {
	TechnicalSkills map[string][]string `json:"technical_skills"`
	SoftSkills      map[string][]string `json:"soft_skills"`
	DomainKnowledge map[string][]string `json:"domain_knowledge"`
	SkillSynonyms   map[string][]string `json:"skill_synonyms"`
}

// Taxonomy maps canonical skill names to categories and resolves synonyms.
// Immutable after construction.
type Taxonomy struct {
	categories map[string]string   // canonical skill -> category string, e.g. "technical_frameworks"
	synonyms   map[string][]string // canonical skill -> aliases
	aliases    map[string]string   // lowercased alias -> canonical skill
	skills     []string            // all canonical skills, sorted
}

// Default returns the taxonomy embedded in the binary.
func Default() (*Taxonomy, error) {
	return parse(defaultTaxonomyJSON)
}

// Load reads a taxonomy document from disk. Missing or malformed files are
// fatal; the extractor cannot run without a skill catalog.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Taxonomy, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy JSON: %w", err)
	}

	t := &Taxonomy{
		categories: make(map[string]string),
		synonyms:   make(map[string][]string),
		aliases:    make(map[string]string),
	}

	addGroup := func(prefix string, skillsByGroup map[string][]string) {
		for group, skills := range skillsByGroup {
			for _, skill := range skills {
				t.categories[skill] = prefix + "_" + group
			}
		}
	}
	addGroup("technical", doc.TechnicalSkills)
	addGroup("soft", doc.SoftSkills)
	addGroup("domain", doc.DomainKnowledge)

	if len(t.categories) == 0 {
		return nil, fmt.Errorf("taxonomy defines no skills")
	}

	for canonical, aliasList := range doc.SkillSynonyms {
		if _, ok := t.categories[canonical]; !ok {
			return nil, fmt.Errorf("synonym entry %q does not name a canonical skill", canonical)
		}
		t.synonyms[canonical] = aliasList
		for _, alias := range aliasList {
			t.aliases[strings.ToLower(alias)] = canonical
		}
	}

	t.skills = make([]string, 0, len(t.categories))
	for skill := range t.categories {
		t.skills = append(t.skills, skill)
	}
	sort.Strings(t.skills)

	return t, nil
}

// Skills returns all canonical skill names in sorted order.
func (t *Taxonomy) Skills() []string {
	return t.skills
}

// CategoryOf returns the category string for a canonical skill and whether
// the skill is known.
func (t *Taxonomy) CategoryOf(skill string) (string, bool) {
	category, ok := t.categories[skill]
	return category, ok
}

// Canonical resolves an alias (case-insensitive) to its canonical skill name.
func (t *Taxonomy) Canonical(alias string) (string, bool) {
	canonical, ok := t.aliases[strings.ToLower(alias)]
	return canonical, ok
}

// SynonymsOf returns the known aliases for a canonical skill.
func (t *Taxonomy) SynonymsOf(skill string) []string {
	return t.synonyms[skill]
}

// Len returns the number of canonical skills.
func (t *Taxonomy) Len() int {
	return len(t.skills)
}
