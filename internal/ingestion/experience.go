package ingestion

import (
	"regexp"
	"strconv"
)

// experiencePatterns match phrasings like "5 years of experience",
// "7+ yrs exp", and "experience of 3 years". The first capture group is the
// number of years.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`),
	regexp.MustCompile(`(?i)(?:experience|exp)\s*(?:of\s*)?(\d+)\+?\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:in|of|working)`),
}

// ExtractExperienceYears heuristically pulls the candidate's years of
// experience from resume text. Returns the maximum value found, or nil when
// no pattern matches. Callers that already know the candidate's experience
// should skip this and pass their value through.
func ExtractExperienceYears(text string) *float64 {
	var best *float64
	for _, pattern := range experiencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			years, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			if best == nil || years > *best {
				v := years
				best = &v
			}
		}
	}
	return best
}
