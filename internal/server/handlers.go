package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/similarity"
	"github.com/jonathan/resume-matcher/internal/types"
)

// multipartMemory is how much of a multipart upload is held in memory before spilling to disk.
const multipartMemory = 8 << 20

// analyzeRequest holds the non-file fields of POST /analyze.
type analyzeRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
	Format         string `json:"format"`
}

// SkillsRequest is the body of POST /skills.
type SkillsRequest struct {
	Text string `json:"text" validate:"required"`
}

// SkillsResponse lists the canonical skills found in the text.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	JobText    string `json:"job_text" validate:"required"`
}

// ScoreResponse carries the similarity of two texts.
type ScoreResponse struct {
	Score        float64 `json:"score"`
	ScorePercent float64 `json:"score_percent"`
}

// VocabularyEntry is one canonical skill and its aliases.
type VocabularyEntry struct {
	Skill   string   `json:"skill"`
	Aliases []string `json:"aliases"`
}

// VocabularyResponse describes the active skill vocabulary.
type VocabularyResponse struct {
	Source string            `json:"source"`
	Count  int               `json:"count"`
	Skills []VocabularyEntry `json:"skills"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze matches an uploaded resume against a job description.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadBytes {
		s.errorResponse(w, r, &ErrPayloadTooLarge{Limit: s.maxUploadBytes})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.errorResponse(w, r, &ErrPayloadTooLarge{Limit: s.maxUploadBytes})
			return
		}
		s.errorResponse(w, r, &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "resume", Message: "file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	req := analyzeRequest{
		JobDescription: r.FormValue("job_description"),
		Format:         r.FormValue("format"),
	}
	if err := validateRequest(req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	doc := types.RawDocument{Content: content, Format: uploadFormat(req.Format, header)}
	result, err := s.matcher.AnalyzeMatch(r.Context(), doc, req.JobDescription)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// uploadFormat prefers the explicit format field, then the file extension, then the part's content type.
func uploadFormat(tag string, header *multipart.FileHeader) types.Format {
	if tag != "" {
		return types.ParseFormat(tag)
	}
	if f := types.FormatFromFilename(header.Filename); f != "" {
		return f
	}
	return types.FormatFromMIME(header.Header.Get("Content-Type"))
}

// handleSkills extracts canonical skills from free text.
func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	var req SkillsRequest
	if err := decodeJSON(w, r, s.maxUploadBytes, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SkillsResponse{Skills: s.skills.Extract(req.Text).Sorted()})
}

// handleScore scores the lexical similarity of two texts.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := decodeJSON(w, r, s.maxUploadBytes, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	score := similarity.Score(req.ResumeText, req.JobText)
	s.jsonResponse(w, http.StatusOK, ScoreResponse{Score: score, ScorePercent: similarity.Percent(score)})
}

// handleVocabulary lists the canonical skills and their aliases.
func (s *Server) handleVocabulary(w http.ResponseWriter, _ *http.Request) {
	vocab := s.skills.Vocabulary()
	resp := VocabularyResponse{Source: vocab.Source(), Count: vocab.Len()}
	for _, name := range vocab.Canonical() {
		aliases := vocab.Aliases(name)
		if aliases == nil {
			aliases = []string{}
		}
		resp.Skills = append(resp.Skills, VocabularyEntry{Skill: name, Aliases: aliases})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// errorResponse writes an error JSON response with the status mapped from err.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.Error(err))
	}
	s.jsonResponse(w, status, map[string]string{
		"error": err.Error(),
		"code":  ErrorCode(err),
	})
}
