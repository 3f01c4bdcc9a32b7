// Package types provides type definitions for structured data used throughout the resume-fit-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MentionSource identifies which extraction pass produced a skill mention.
type MentionSource string

const (
	// SourceModel marks mentions produced by the entity-extraction model pass.
	SourceModel MentionSource = "model"
	// SourceRule marks mentions produced by the lexicon scan pass.
	SourceRule MentionSource = "rule"
)

// RelationKind identifies the kind of an ontology edge.
type RelationKind string

const (
	// RelationRelatedTo links skills that commonly appear together.
	RelationRelatedTo RelationKind = "related_to"
	// RelationPartOf links a skill to a broader skill it belongs to.
	RelationPartOf RelationKind = "part_of"
)

// Skill is a node in the skill ontology. Immutable once the ontology is loaded.
type Skill struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases,omitempty"`
}

// SkillRelation is a directed edge between two ontology skills.
// Weight must be in (0, 1]; self-loops are rejected at load time.
type SkillRelation struct {
	Source string       `json:"source"`
	Target string       `json:"target"`
	Kind   RelationKind `json:"kind"`
	Weight float64      `json:"weight"`
}

// ExtractedMention is a raw skill mention found in resume text.
// Mentions live for a single request and are never persisted.
type ExtractedMention struct {
	Text       string        `json:"text"`
	Source     MentionSource `json:"source"`
	Confidence float64       `json:"confidence"`
}

// CanonicalSkill is the result of normalizing one mention against the ontology.
// When Resolved is false the mention could not be matched and Name holds the
// literal mention text; unresolved skills are excluded from graph and semantic
// scoring but still counted in coverage statistics.
type CanonicalSkill struct {
	SkillID    string  `json:"skill_id,omitempty"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
	Confidence float64 `json:"confidence"`
	Resolved   bool    `json:"resolved"`
	Raw        string  `json:"raw"`
}

// ResumeProfile is the normalized view of one resume: deduplicated canonical
// skills (max similarity and max confidence kept per skill id) plus the
// candidate's years of experience when known.
type ResumeProfile struct {
	Skills          []CanonicalSkill `json:"skills"`
	ExperienceYears *float64         `json:"experience_years,omitempty"`
}

// ResolvedSkills returns only the skills that resolved to an ontology entry.
func (p *ResumeProfile) ResolvedSkills() []CanonicalSkill {
	resolved := make([]CanonicalSkill, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s.Resolved {
			resolved = append(resolved, s)
		}
	}
	return resolved
}

// SkillNames returns the display names of all profile skills, resolved or not.
func (p *ResumeProfile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}
