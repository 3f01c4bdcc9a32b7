// Package ontology loads the controlled skill ontology and exposes read-only
// lookups over its skills, aliases, categories, and relations. The ontology
// is loaded once at process start and never mutated afterwards.
package ontology

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/resume-fit-analyzer/internal/schemas"
	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

// Term is one indexable ontology string: a canonical skill name or an alias,
// labeled with the skill it resolves to.
type Term struct {
	Text    string
	SkillID string
}

// Ontology is the immutable in-memory skill knowledge base.
type Ontology struct {
	skills    map[string]types.Skill
	order     []string          // skill ids, sorted for deterministic iteration
	aliases   map[string]string // lowercased canonical name or alias -> skill id
	neighbors map[string][]string
	relations []types.SkillRelation
}

type ontologyFile struct {
	Skills    []types.Skill         `json:"skills"`
	Relations []types.SkillRelation `json:"relations"`
}

// Load reads, validates, and parses an ontology JSON file.
func Load(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ontology file %s: %w", path, err)
	}
	o, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid ontology file %s: %w", path, err)
	}
	return o, nil
}

// Parse validates raw ontology JSON against the schema and builds the
// immutable lookup structures. Construction is order-independent: the same
// set of skills and relations always produces the same ontology.
func Parse(data []byte) (*Ontology, error) {
	if err := schemas.ValidateBytes([]byte(fileSchema), data); err != nil {
		return nil, err
	}

	var file ontologyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse ontology JSON: %w", err)
	}

	o := &Ontology{
		skills:    make(map[string]types.Skill, len(file.Skills)),
		aliases:   make(map[string]string),
		neighbors: make(map[string][]string),
	}

	for _, skill := range file.Skills {
		if _, exists := o.skills[skill.ID]; exists {
			return nil, fmt.Errorf("duplicate skill id %q", skill.ID)
		}
		o.skills[skill.ID] = skill
		o.order = append(o.order, skill.ID)

		for _, term := range append([]string{skill.Name}, skill.Aliases...) {
			key := strings.ToLower(strings.TrimSpace(term))
			if key == "" {
				continue
			}
			if existing, ok := o.aliases[key]; ok && existing != skill.ID {
				return nil, fmt.Errorf("term %q is claimed by both %q and %q", term, existing, skill.ID)
			}
			o.aliases[key] = skill.ID
		}
	}
	sort.Strings(o.order)

	for _, rel := range file.Relations {
		if rel.Source == rel.Target {
			return nil, fmt.Errorf("self-loop relation on skill %q", rel.Source)
		}
		if _, ok := o.skills[rel.Source]; !ok {
			return nil, fmt.Errorf("relation references unknown skill %q", rel.Source)
		}
		if _, ok := o.skills[rel.Target]; !ok {
			return nil, fmt.Errorf("relation references unknown skill %q", rel.Target)
		}
		o.relations = append(o.relations, rel)
		// Relation kinds are treated symmetrically for scoring.
		o.neighbors[rel.Source] = append(o.neighbors[rel.Source], rel.Target)
		o.neighbors[rel.Target] = append(o.neighbors[rel.Target], rel.Source)
	}
	for id := range o.neighbors {
		o.neighbors[id] = dedupeSorted(o.neighbors[id])
	}

	return o, nil
}

// Size returns the number of canonical skills.
func (o *Ontology) Size() int {
	return len(o.skills)
}

// Skill looks up a canonical skill by id.
func (o *Ontology) Skill(id string) (types.Skill, bool) {
	s, ok := o.skills[id]
	return s, ok
}

// SkillIDs returns all skill ids in sorted order.
func (o *Ontology) SkillIDs() []string {
	ids := make([]string, len(o.order))
	copy(ids, o.order)
	return ids
}

// ResolveTerm resolves a literal string against canonical names and aliases,
// case-insensitively. This is the exact-match short circuit used before any
// embedding lookup.
func (o *Ontology) ResolveTerm(text string) (types.Skill, bool) {
	id, ok := o.aliases[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		return types.Skill{}, false
	}
	return o.skills[id], true
}

// Category returns the category of a skill id, or empty string if unknown.
func (o *Ontology) Category(id string) string {
	if s, ok := o.skills[id]; ok {
		return s.Category
	}
	return ""
}

// Neighbors returns the skill ids directly related to id (one hop, relation
// kinds treated symmetrically), sorted and deduplicated.
func (o *Ontology) Neighbors(id string) []string {
	n := o.neighbors[id]
	out := make([]string, len(n))
	copy(out, n)
	return out
}

// Relations returns a copy of all ontology edges.
func (o *Ontology) Relations() []types.SkillRelation {
	rels := make([]types.SkillRelation, len(o.relations))
	copy(rels, o.relations)
	return rels
}

// Terms returns every indexable string (canonical names first, then aliases)
// labeled with its skill id, in deterministic order.
func (o *Ontology) Terms() []Term {
	terms := make([]Term, 0, len(o.aliases))
	for _, id := range o.order {
		skill := o.skills[id]
		terms = append(terms, Term{Text: skill.Name, SkillID: id})
		aliases := make([]string, len(skill.Aliases))
		copy(aliases, skill.Aliases)
		sort.Strings(aliases)
		for _, a := range aliases {
			terms = append(terms, Term{Text: a, SkillID: id})
		}
	}
	return terms
}

// LexiconTerms returns all matchable surface strings for the rule-based
// extraction pass, longest first so multi-word skills match before their
// substrings.
func (o *Ontology) LexiconTerms() []string {
	seen := make(map[string]bool, len(o.aliases))
	terms := make([]string, 0, len(o.aliases))
	for _, t := range o.Terms() {
		key := strings.ToLower(t.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, t.Text)
	}
	sort.SliceStable(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return terms
}

func dedupeSorted(in []string) []string {
	sort.Strings(in)
	out := in[:0]
	var prev string
	for i, s := range in {
		if i == 0 || s != prev {
			out = append(out, s)
		}
		prev = s
	}
	return out
}
