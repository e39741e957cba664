package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jobnexus/jobnexus/internal/core"
	"github.com/jobnexus/jobnexus/internal/observability"
	"github.com/jobnexus/jobnexus/internal/resume"
	"github.com/jobnexus/jobnexus/internal/store"
)

const maxUploadBytes = 10 << 20 // 10MB

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "AI Job Finder API is running with real-time job search",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	configured := func(ok bool) string {
		if ok {
			return "configured"
		}
		return "not configured"
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"apis": map[string]string{
			"gemini":  configured(s.health.GeminiConfigured),
			"jsearch": configured(s.health.JSearchConfigured),
		},
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

// readUpload pulls the multipart resume file out of the request.
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	filename, data, err := readUpload(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "A resume file is required")
		return
	}

	result, err := s.pipeline.Process(r.Context(), filename, data)
	if err != nil {
		switch {
		case errors.Is(err, resume.ErrUnsupportedType):
			respondError(w, http.StatusBadRequest, "Only PDF and DOCX files are allowed")
		case errors.Is(err, core.ErrInsufficientText):
			respondError(w, http.StatusBadRequest, "Could not extract sufficient text from the resume")
		default:
			slog.Error("resume processing failed", "file", filename, "error", err)
			respondError(w, http.StatusInternalServerError, "Error processing resume")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	filename, data, err := readUpload(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "A resume file is required")
		return
	}

	report, err := s.ats.Analyze(r.Context(), filename, data)
	if err != nil {
		switch {
		case errors.Is(err, resume.ErrUnsupportedType):
			respondError(w, http.StatusBadRequest, "Only PDF and DOCX files are allowed")
		case errors.Is(err, core.ErrInsufficientText):
			respondError(w, http.StatusBadRequest, "Could not extract sufficient text from the resume")
		default:
			slog.Error("ATS analysis failed", "file", filename, "error", err)
			respondError(w, http.StatusInternalServerError, "Error analyzing resume")
		}
		return
	}

	respondJSON(w, http.StatusOK, report)
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		slog.Error("failed to create user", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

type ShortlistJobRequest struct {
	UserID  string                 `json:"user_id"`
	JobData map[string]interface{} `json:"job_data"`
}

func (s *Server) handleShortlistJob(w http.ResponseWriter, r *http.Request) {
	var req ShortlistJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, err := store.ParseUserID(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	jobID, _ := req.JobData["jobId"].(string)
	if jobID == "" {
		respondError(w, http.StatusBadRequest, "job_data.jobId is required")
		return
	}

	shortlistedAt := time.Now().UTC()
	req.JobData["shortlistedAt"] = shortlistedAt.Format(time.RFC3339)
	req.JobData["status"] = "active"

	data, err := json.Marshal(req.JobData)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid job data")
		return
	}

	err = s.store.AddShortlist(r.Context(), userID, store.ShortlistEntry{
		JobID:         jobID,
		Data:          data,
		ShortlistedAt: shortlistedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, store.ErrDuplicateJob):
			respondError(w, http.StatusBadRequest, "Job already shortlisted")
		default:
			slog.Error("failed to shortlist job", "user_id", userID, "job_id", jobID, "error", err)
			respondError(w, http.StatusInternalServerError, "Internal server error while shortlisting job")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Job shortlisted successfully",
		"jobId":         jobID,
		"shortlistedAt": shortlistedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleListShortlisted(w http.ResponseWriter, r *http.Request) {
	userID, err := store.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	jobs, err := s.store.ListShortlisted(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to list shortlisted jobs", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error while fetching shortlisted jobs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"shortlisted_jobs": jobs,
		"total_count":      len(jobs),
	})
}

type RemoveShortlistRequest struct {
	UserID string `json:"user_id"`
	JobID  string `json:"job_id"`
}

func (s *Server) handleRemoveShortlisted(w http.ResponseWriter, r *http.Request) {
	var req RemoveShortlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, err := store.ParseUserID(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	err = s.store.RemoveShortlisted(r.Context(), userID, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, store.ErrJobNotFound):
			respondError(w, http.StatusNotFound, "Job not found in shortlisted jobs")
		default:
			slog.Error("failed to remove shortlisted job", "user_id", userID, "job_id", req.JobID, "error", err)
			respondError(w, http.StatusInternalServerError, "Internal server error while removing shortlisted job")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Job removed from shortlist successfully",
		"jobId":     req.JobID,
		"removedAt": time.Now().UTC().Format(time.RFC3339),
	})
}
