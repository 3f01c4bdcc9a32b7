// Package config provides configuration loading and validation for the analyzer.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// weightSumTolerance is the floating-point slack allowed when checking that
// weight triples sum to 1.0.
const weightSumTolerance = 1e-9

// Config represents the analyzer configuration. It is loaded once at process
// start, validated, and treated as immutable afterwards.
type Config struct {
	// Aggregation weights. Must sum to 1.0.
	SemanticWeight   float64 `json:"semantic_weight,omitempty"`
	GraphWeight      float64 `json:"graph_weight,omitempty"`
	ExperienceWeight float64 `json:"experience_weight,omitempty"`

	// Graph-score sub-weights. Must sum to 1.0.
	GraphJaccardWeight  float64 `json:"graph_jaccard_weight,omitempty"`
	GraphCategoryWeight float64 `json:"graph_category_weight,omitempty"`

	// Thresholds
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"` // minimum cosine similarity to resolve a mention
	MatchThreshold      float64 `json:"match_threshold,omitempty"`      // minimum best-match similarity to count a job skill as covered
	StrongFitThreshold  float64 `json:"strong_fit_threshold,omitempty"`
	ModerateThreshold   float64 `json:"moderate_fit_threshold,omitempty"`
	PotentialThreshold  float64 `json:"potential_fit_threshold,omitempty"`

	// Experience curve
	ExperienceSteepness    float64 `json:"experience_steepness,omitempty"`     // logistic k
	UnknownExperienceScore float64 `json:"unknown_experience_score,omitempty"` // score when candidate years are unknown but a minimum is set

	// Semantic scoring
	PreferredSkillWeight float64 `json:"preferred_skill_weight,omitempty"` // contribution of a preferred skill relative to a required one

	// Models
	APIKey          string `json:"api_key,omitempty"`          // Gemini API key; empty runs extraction in degraded mode
	ExtractionModel string `json:"extraction_model,omitempty"` // model used for the entity-extraction pass
	EmbeddingModel  string `json:"embedding_model,omitempty"`  // model used for text embeddings

	// Ontology and relations
	OntologyPath    string `json:"ontology_path,omitempty"`
	RelationsURL    string `json:"relations_url,omitempty"`    // optional PostgreSQL DSN for the relation store
	ExpandRelations bool   `json:"expand_relations,omitempty"` // one-hop relation expansion before graph scoring

	// Limits
	MaxConcurrentEmbeds int64 `json:"max_concurrent_embeds,omitempty"` // bound on simultaneous model calls

	// Server
	Port int `json:"port,omitempty"`

	// explicitKeys records which zero-valid scalar keys the source file set,
	// so MergeWithDefaults can tell "absent" from "configured as zero".
	explicitKeys map[string]bool
}

// zeroValidKeys lists the scalar config keys for which 0 is a legal explicit
// value. Presence of one of these keys in a loaded file suppresses its
// default even when the value is zero.
var zeroValidKeys = []string{
	"similarity_threshold",
	"match_threshold",
	"unknown_experience_score",
	"preferred_skill_weight",
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		SemanticWeight:   0.50,
		GraphWeight:      0.30,
		ExperienceWeight: 0.20,

		GraphJaccardWeight:  0.60,
		GraphCategoryWeight: 0.40,

		SimilarityThreshold: 0.75,
		MatchThreshold:      0.50,
		StrongFitThreshold:  0.75,
		ModerateThreshold:   0.50,
		PotentialThreshold:  0.25,

		ExperienceSteepness:    0.8,
		UnknownExperienceScore: 0.3,

		PreferredSkillWeight: 0.5,

		ExtractionModel: "gemini-2.0-flash",
		EmbeddingModel:  "text-embedding-004",

		OntologyPath:        "data/skill_ontology.json",
		MaxConcurrentEmbeds: 4,
		Port:                8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	cfg.recordExplicitKeys(data)

	return &cfg, nil
}

// recordExplicitKeys notes which zero-valid keys appear in the raw JSON.
func (c *Config) recordExplicitKeys(data []byte) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return
	}
	for _, key := range zeroValidKeys {
		if _, ok := raw[key]; ok {
			if c.explicitKeys == nil {
				c.explicitKeys = make(map[string]bool)
			}
			c.explicitKeys[key] = true
		}
	}
}

func (c *Config) explicitlySet(key string) bool {
	return c.explicitKeys[key]
}

// FromEnv fills credentials and connection strings from environment variables
// when they are not already set.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.RelationsURL == "" {
		c.RelationsURL = os.Getenv("RELATIONS_DATABASE_URL")
	}
}

// Validate checks the configuration invariants. A failure here is fatal at
// startup: a drifting weight set silently changes score semantics.
func (c *Config) Validate() error {
	if sum := c.SemanticWeight + c.GraphWeight + c.ExperienceWeight; math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("config error: aggregation weights must sum to 1.0, got %g", sum)
	}
	if c.SemanticWeight < 0 || c.GraphWeight < 0 || c.ExperienceWeight < 0 {
		return fmt.Errorf("config error: aggregation weights must be non-negative")
	}
	if sum := c.GraphJaccardWeight + c.GraphCategoryWeight; math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("config error: graph sub-weights must sum to 1.0, got %g", sum)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("config error: 'similarity_threshold' must be in [0,1], got %g", c.SimilarityThreshold)
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("config error: 'match_threshold' must be in [0,1], got %g", c.MatchThreshold)
	}
	if !(c.StrongFitThreshold > c.ModerateThreshold && c.ModerateThreshold > c.PotentialThreshold && c.PotentialThreshold > 0) {
		return fmt.Errorf("config error: fit thresholds must be strictly ordered: strong (%g) > moderate (%g) > potential (%g) > 0",
			c.StrongFitThreshold, c.ModerateThreshold, c.PotentialThreshold)
	}
	if c.StrongFitThreshold > 1 {
		return fmt.Errorf("config error: 'strong_fit_threshold' must not exceed 1.0, got %g", c.StrongFitThreshold)
	}
	if c.ExperienceSteepness <= 0 {
		return fmt.Errorf("config error: 'experience_steepness' must be positive, got %g", c.ExperienceSteepness)
	}
	if c.UnknownExperienceScore < 0 || c.UnknownExperienceScore > 1 {
		return fmt.Errorf("config error: 'unknown_experience_score' must be in [0,1], got %g", c.UnknownExperienceScore)
	}
	if c.PreferredSkillWeight < 0 || c.PreferredSkillWeight > 1 {
		return fmt.Errorf("config error: 'preferred_skill_weight' must be in [0,1], got %g", c.PreferredSkillWeight)
	}
	if c.MaxConcurrentEmbeds < 1 {
		return fmt.Errorf("config error: 'max_concurrent_embeds' must be at least 1, got %d", c.MaxConcurrentEmbeds)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Weight triples merge as a unit so a config that customizes one
// weight must state all three. Scalars for which zero is a legal value keep
// an explicit 0 from a loaded file. CLI flags are applied after merging and
// win.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.SemanticWeight == 0 && result.GraphWeight == 0 && result.ExperienceWeight == 0 {
		result.SemanticWeight = defaults.SemanticWeight
		result.GraphWeight = defaults.GraphWeight
		result.ExperienceWeight = defaults.ExperienceWeight
	}
	if result.GraphJaccardWeight == 0 && result.GraphCategoryWeight == 0 {
		result.GraphJaccardWeight = defaults.GraphJaccardWeight
		result.GraphCategoryWeight = defaults.GraphCategoryWeight
	}
	if result.SimilarityThreshold == 0 && !c.explicitlySet("similarity_threshold") {
		result.SimilarityThreshold = defaults.SimilarityThreshold
	}
	if result.MatchThreshold == 0 && !c.explicitlySet("match_threshold") {
		result.MatchThreshold = defaults.MatchThreshold
	}
	if result.StrongFitThreshold == 0 && result.ModerateThreshold == 0 && result.PotentialThreshold == 0 {
		result.StrongFitThreshold = defaults.StrongFitThreshold
		result.ModerateThreshold = defaults.ModerateThreshold
		result.PotentialThreshold = defaults.PotentialThreshold
	}
	if result.ExperienceSteepness == 0 {
		result.ExperienceSteepness = defaults.ExperienceSteepness
	}
	if result.UnknownExperienceScore == 0 && !c.explicitlySet("unknown_experience_score") {
		result.UnknownExperienceScore = defaults.UnknownExperienceScore
	}
	if result.PreferredSkillWeight == 0 && !c.explicitlySet("preferred_skill_weight") {
		result.PreferredSkillWeight = defaults.PreferredSkillWeight
	}
	if result.ExtractionModel == "" {
		result.ExtractionModel = defaults.ExtractionModel
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.OntologyPath == "" {
		result.OntologyPath = defaults.OntologyPath
	}
	if result.MaxConcurrentEmbeds == 0 {
		result.MaxConcurrentEmbeds = defaults.MaxConcurrentEmbeds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}
