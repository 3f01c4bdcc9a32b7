package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-fit-analyzer/internal/ingestion"
	"github.com/jonathan/resume-fit-analyzer/internal/pipeline"
	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// matchRequest is the POST /match request body. Exactly one of resume_text
// and resume_html must carry the resume content.
type matchRequest struct {
	ResumeText      string     `json:"resume_text"`
	ResumeHTML      string     `json:"resume_html"`
	ExperienceYears *float64   `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
	Job             jobRequest `json:"job" validate:"required"`
}

type jobRequest struct {
	Title              string   `json:"title" validate:"required,max=300"`
	Description        string   `json:"description"`
	RequiredSkills     []string `json:"required_skills" validate:"dive,min=1,max=200"`
	PreferredSkills    []string `json:"preferred_skills" validate:"dive,min=1,max=200"`
	MinExperienceYears *float64 `json:"min_experience_years" validate:"omitempty,gte=0,lte=80"`
}

// handleMatch scores one resume against one job requirement.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resumeText := req.ResumeText
	if resumeText == "" && req.ResumeHTML != "" {
		text, err := ingestion.HTMLToText(req.ResumeHTML)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "failed to parse resume_html: "+err.Error())
			return
		}
		resumeText = text
	}
	if strings.TrimSpace(resumeText) == "" {
		s.errorResponse(w, http.StatusBadRequest, "one of resume_text or resume_html is required")
		return
	}

	result, err := s.service.Match(r.Context(), pipeline.MatchInput{
		ResumeText:      resumeText,
		ExperienceYears: req.ExperienceYears,
		Job: types.JobRequirement{
			Title:              req.Job.Title,
			Description:        req.Job.Description,
			RequiredSkills:     req.Job.RequiredSkills,
			PreferredSkills:    req.Job.PreferredSkills,
			MinExperienceYears: req.Job.MinExperienceYears,
		},
	})
	if err != nil {
		log.Printf("match failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "match failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// validationMessage flattens validator errors into a single client-facing
// message naming each offending field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request: " + err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Namespace()+" failed "+fe.Tag())
	}
	return "invalid request: " + strings.Join(parts, "; ")
}
