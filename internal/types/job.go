package types

// JobRequirement is the structured job description the matcher scores against.
// The boundary layer validates it before it reaches the core; the core only
// assumes non-negative years and tolerates empty skill lists.
type JobRequirement struct {
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills,omitempty"`
	MinExperienceYears *float64 `json:"min_experience_years,omitempty"`
}

// AllSkills returns required then preferred skills, deduplicated
// case-insensitively with first-seen order preserved.
func (j *JobRequirement) AllSkills() []string {
	seen := make(map[string]bool, len(j.RequiredSkills)+len(j.PreferredSkills))
	all := make([]string, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	for _, group := range [][]string{j.RequiredSkills, j.PreferredSkills} {
		for _, s := range group {
			key := normalizeKey(s)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, s)
		}
	}
	return all
}

// DistinctRequiredSkills returns the required skills deduplicated
// case-insensitively with first-seen order preserved.
func (j *JobRequirement) DistinctRequiredSkills() []string {
	seen := make(map[string]bool, len(j.RequiredSkills))
	distinct := make([]string, 0, len(j.RequiredSkills))
	for _, s := range j.RequiredSkills {
		key := normalizeKey(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		distinct = append(distinct, s)
	}
	return distinct
}
