// Package pipeline orchestrates the full resume–job matching flow:
// extraction → normalization → scoring → explanation. The Service is
// constructed once at process start and shared read-only across requests;
// per-request state never outlives a Match call.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/resume-fit-analyzer/internal/config"
	"github.com/jonathan/resume-fit-analyzer/internal/embedding"
	"github.com/jonathan/resume-fit-analyzer/internal/explain"
	"github.com/jonathan/resume-fit-analyzer/internal/extraction"
	"github.com/jonathan/resume-fit-analyzer/internal/ingestion"
	"github.com/jonathan/resume-fit-analyzer/internal/normalize"
	"github.com/jonathan/resume-fit-analyzer/internal/ontology"
	"github.com/jonathan/resume-fit-analyzer/internal/relations"
	"github.com/jonathan/resume-fit-analyzer/internal/scoring"
	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

// MatchInput is one (resume, job) pair to score. ExperienceYears overrides
// the heuristic detection from resume text when provided.
type MatchInput struct {
	ResumeText      string
	ExperienceYears *float64
	Job             types.JobRequirement
}

// Service wires the matching components together. All fields are immutable
// after construction, so a single Service is safe for concurrent requests.
type Service struct {
	cfg        config.Config
	ont        *ontology.Ontology
	embedder   embedding.Embedder
	index      *embedding.Index
	extractor  *extraction.Extractor
	normalizer *normalize.Normalizer
	semantic   *scoring.SemanticScorer
	graph      *scoring.GraphScorer
	experience *scoring.ExperienceScorer
	aggregator *scoring.Aggregator
	explainer  *explain.Explainer
	store      relations.Store
}

// Options override default component construction, primarily for tests and
// keyless deployments.
type Options struct {
	Embedder embedding.Embedder        // defaults to Gemini when an API key is set, hashing otherwise
	Model    extraction.ModelExtractor // defaults to Gemini when an API key is set, nil otherwise
	Store    relations.Store           // defaults to Postgres when RelationsURL is set, ontology-backed otherwise
	Ontology *ontology.Ontology        // defaults to loading cfg.OntologyPath
}

// NewService validates the configuration, loads the ontology, builds the
// embedding index, and wires every scorer. Configuration or ontology
// failures here are fatal by design: the pipeline must not serve without
// them. A missing extraction model is not fatal — extraction degrades to
// lexicon-only.
func NewService(ctx context.Context, cfg config.Config, opts Options) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ont := opts.Ontology
	if ont == nil {
		loaded, err := ontology.Load(cfg.OntologyPath)
		if err != nil {
			return nil, err
		}
		ont = loaded
	}

	embedder := opts.Embedder
	if embedder == nil {
		if cfg.APIKey != "" {
			gemini, err := embedding.NewGeminiEmbedder(ctx, cfg.APIKey, cfg.EmbeddingModel)
			if err != nil {
				return nil, fmt.Errorf("failed to create embedder: %w", err)
			}
			embedder = gemini
		} else {
			log.Printf("no API key configured, using deterministic hashing embedder")
			embedder = embedding.NewHashingEmbedder()
		}
	}
	embedder = newLimitedEmbedder(embedder, cfg.MaxConcurrentEmbeds)

	index, err := embedding.BuildIndex(ctx, embedder, ont.Terms())
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding index: %w", err)
	}
	log.Printf("embedding index built: %d terms over %d skills (dim=%d)", index.Size(), ont.Size(), index.Dimension())

	model := opts.Model
	if model == nil && cfg.APIKey != "" {
		gemini, err := extraction.NewGeminiExtractor(ctx, cfg.APIKey, cfg.ExtractionModel)
		if err != nil {
			log.Printf("model extractor unavailable, extraction will run degraded: %v", err)
		} else {
			model = gemini
		}
	}

	store := opts.Store
	if store == nil {
		if cfg.RelationsURL != "" {
			pg, err := relations.ConnectPostgres(ctx, cfg.RelationsURL)
			if err != nil {
				return nil, fmt.Errorf("failed to connect relation store: %w", err)
			}
			store = pg
		} else {
			store = relations.NewMemoryStore(ont)
		}
	}

	return &Service{
		cfg:        cfg,
		ont:        ont,
		embedder:   embedder,
		index:      index,
		extractor:  extraction.New(model, extraction.NewLexicon(ont.LexiconTerms())),
		normalizer: normalize.New(ont, embedder, index, cfg.SimilarityThreshold),
		semantic:   scoring.NewSemanticScorer(cfg.PreferredSkillWeight),
		graph:      scoring.NewGraphScorer(ont, store, cfg.GraphJaccardWeight, cfg.GraphCategoryWeight, cfg.ExpandRelations),
		experience: scoring.NewExperienceScorer(cfg.ExperienceSteepness, cfg.UnknownExperienceScore),
		aggregator: scoring.NewAggregator(cfg.SemanticWeight, cfg.GraphWeight, cfg.ExperienceWeight,
			cfg.StrongFitThreshold, cfg.ModerateThreshold, cfg.PotentialThreshold),
		explainer: explain.New(),
		store:     store,
	}, nil
}

// Close releases resources held by the service.
func (s *Service) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// OntologySize reports the number of canonical skills loaded.
func (s *Service) OntologySize() int {
	return s.ont.Size()
}

// ModelAvailable reports whether the model extraction pass is configured.
// False means every match runs degraded, lexicon-only.
func (s *Service) ModelAvailable() bool {
	return s.extractor.HasModel()
}

// Match runs the full pipeline for one (resume, job) pair. It always returns
// a complete MatchResult for well-formed input; extraction-model failures
// only set the Degraded flag.
func (s *Service) Match(ctx context.Context, in MatchInput) (*types.MatchResult, error) {
	text := ingestion.CleanText(in.ResumeText)

	mentions, degraded := s.extractor.Extract(ctx, text)

	canonical, err := s.normalizer.NormalizeAll(ctx, mentions)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize resume skills: %w", err)
	}

	years := in.ExperienceYears
	if years == nil {
		years = ingestion.ExtractExperienceYears(text)
	}
	profile := normalize.BuildProfile(canonical, years)

	jobSkills, err := s.prepareJobSkills(ctx, &in.Job)
	if err != nil {
		return nil, err
	}

	resumeVectors, resumeIDs, err := s.prepareResumeSide(ctx, &profile)
	if err != nil {
		return nil, err
	}

	vectors := make([]scoring.JobSkillVector, len(jobSkills))
	for i, js := range jobSkills {
		vectors[i] = scoring.JobSkillVector{Name: js.literal, Vector: js.vector, Required: js.required}
	}
	semanticScore, bestMatches := s.semantic.Score(vectors, resumeVectors)

	graphScore, err := s.graph.Score(ctx, resumeIDs, jobSkillIDs(jobSkills))
	if err != nil {
		return nil, fmt.Errorf("failed to compute graph score: %w", err)
	}

	experienceScore := s.experience.Score(profile.ExperienceYears, in.Job.MinExperienceYears)

	breakdown := s.aggregator.Breakdown(semanticScore, graphScore, experienceScore)
	overall := s.aggregator.Overall(breakdown)

	result := &types.MatchResult{
		RequestID:     uuid.NewString(),
		OverallScore:  overall,
		FitLabel:      s.aggregator.Label(overall),
		Breakdown:     breakdown,
		Contributions: s.aggregator.Contributions(breakdown),
		Degraded:      degraded,
	}
	s.fillCoverage(result, jobSkills, bestMatches, resumeIDs)
	result.Explanation = s.explainer.Explain(result, in.Job.Title, len(profile.Skills))

	log.Printf("match %s: overall=%.4f (%s) semantic=%.3f graph=%.3f experience=%.3f degraded=%t",
		result.RequestID, overall, result.FitLabel, breakdown.SemanticScore, breakdown.GraphScore, breakdown.ExperienceScore, degraded)

	return result, nil
}

// jobSkill is one distinct job skill prepared for scoring.
type jobSkill struct {
	literal  string
	skillID  string // empty when unresolved
	vector   []float32
	required bool
}

// prepareJobSkills normalizes the job's distinct skills and attaches their
// embeddings. A skill listed as both required and preferred counts as
// required.
func (s *Service) prepareJobSkills(ctx context.Context, job *types.JobRequirement) ([]jobSkill, error) {
	requiredKeys := make(map[string]bool, len(job.RequiredSkills))
	for _, r := range job.RequiredSkills {
		requiredKeys[types.NormalizeKey(r)] = true
	}

	all := job.AllSkills()
	skills := make([]jobSkill, 0, len(all))
	for _, literal := range all {
		canonical, err := s.normalizer.Normalize(ctx, types.ExtractedMention{
			Text:       literal,
			Source:     types.SourceRule,
			Confidence: 1.0,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to normalize job skill %q: %w", literal, err)
		}

		vec, err := s.vectorFor(ctx, canonical)
		if err != nil {
			return nil, err
		}

		skills = append(skills, jobSkill{
			literal:  literal,
			skillID:  canonical.SkillID,
			vector:   vec,
			required: requiredKeys[types.NormalizeKey(literal)],
		})
	}
	return skills, nil
}

// prepareResumeSide collects resume skill vectors and the resolved canonical
// id set used by the graph scorer.
func (s *Service) prepareResumeSide(ctx context.Context, profile *types.ResumeProfile) ([][]float32, []string, error) {
	vectors := make([][]float32, 0, len(profile.Skills))
	var ids []string
	for _, skill := range profile.Skills {
		vec, err := s.vectorFor(ctx, skill)
		if err != nil {
			return nil, nil, err
		}
		vectors = append(vectors, vec)
		if skill.Resolved {
			ids = append(ids, skill.SkillID)
		}
	}
	return vectors, ids, nil
}

// vectorFor returns the ontology embedding for resolved skills and a fresh
// embedding of the literal text for unresolved ones.
func (s *Service) vectorFor(ctx context.Context, skill types.CanonicalSkill) ([]float32, error) {
	if skill.Resolved {
		if vec, ok := s.index.SkillVector(skill.SkillID); ok {
			return vec, nil
		}
	}
	vec, err := s.embedder.Embed(ctx, skill.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to embed skill %q: %w", skill.Name, err)
	}
	return vec, nil
}

// fillCoverage populates matched, missing, and preferred-gap lists. A job
// skill counts as matched when its canonical id appears in the resume or its
// best similarity meets the match threshold. Matched plus missing always
// covers exactly the distinct required skills.
func (s *Service) fillCoverage(result *types.MatchResult, jobSkills []jobSkill, bestMatches []scoring.BestMatch, resumeIDs []string) {
	resumeIDSet := make(map[string]bool, len(resumeIDs))
	for _, id := range resumeIDs {
		resumeIDSet[id] = true
	}

	result.MatchedSkills = make([]types.SkillMatch, 0, len(jobSkills))
	result.MissingSkills = []string{}
	for i, js := range jobSkills {
		similarity := 0.0
		if i < len(bestMatches) {
			similarity = bestMatches[i].Similarity
		}
		matched := similarity >= s.cfg.MatchThreshold || (js.skillID != "" && resumeIDSet[js.skillID])

		if js.required {
			result.MatchedSkills = append(result.MatchedSkills, types.SkillMatch{
				Name:       js.literal,
				Similarity: similarity,
				Matched:    matched,
			})
			if !matched {
				result.MissingSkills = append(result.MissingSkills, js.literal)
			}
		} else if !matched {
			result.PreferredGaps = append(result.PreferredGaps, js.literal)
		}
	}
}

func jobSkillIDs(skills []jobSkill) []string {
	var ids []string
	for _, js := range skills {
		if js.skillID != "" {
			ids = append(ids, js.skillID)
		}
	}
	return ids
}
