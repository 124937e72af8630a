package types

import "time"

// SkillProfile is the complete skill profile for one individual, built from
// whatever sources were available. The RAG layer consumes it read-only.
type SkillProfile struct {
	Name            string                   `json:"name,omitempty"`
	Summary         string                   `json:"summary"`
	Skills          []ScoredSkill            `json:"skills"`
	TopSkills       []ScoredSkill            `json:"top_skills"`
	SkillCategories map[string][]ScoredSkill `json:"skill_categories"`
	DataSources     []string                 `json:"data_sources"`
	Metadata        ProfileMetadata          `json:"metadata"`
	RawData         RawData                  `json:"raw_data"`
}

// ProfileMetadata records build-time facts about a profile.
type ProfileMetadata struct {
	CreatedAt    time.Time `json:"created_at"`
	TotalSkills  int       `json:"total_skills"`
	SourcesCount int       `json:"sources_count"`
}

// RawData holds the original source material a profile was built from.
// The RAG indexer reads these fields directly; all are optional.
type RawData struct {
	CV                *CVData       `json:"cv,omitempty"`
	GitHub            *GitHubData   `json:"github,omitempty"`
	PersonalStatement *StatementDoc `json:"personal_statement,omitempty"`
	ReferenceLetter   *StatementDoc `json:"reference_letter,omitempty"`
}

// CVData is the combined text of one or more CV documents.
// SourceIDs are the caller-supplied stable identifiers of the individual
// documents, in the order they were combined.
type CVData struct {
	SourceIDs []string `json:"source_ids"`
	RawText   string   `json:"raw_text"`
	Count     int      `json:"count"`
}

// GitHubData is repository metadata collected externally and supplied as input.
type GitHubData struct {
	Username         string       `json:"username,omitempty"`
	Bio              string       `json:"bio,omitempty"`
	PrimaryLanguages []string     `json:"primary_languages,omitempty"`
	Topics           []string     `json:"topics,omitempty"`
	Repositories     []Repository `json:"repositories"`
}

// Repository is the summary of a single code repository.
type Repository struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Stars       int      `json:"stars,omitempty"`
}

// StatementDoc is a free-text document (personal statement, reference letter).
type StatementDoc struct {
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
}
