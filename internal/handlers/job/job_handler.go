package job

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evn/shiftpay_backendl/internal/middleware"
	"github.com/evn/shiftpay_backendl/internal/models"
	"github.com/evn/shiftpay_backendl/internal/pkg/response"
	"github.com/evn/shiftpay_backendl/internal/repositories"
)

type JobHandler struct {
	repo *repositories.JobRepository
}

func NewJobHandler(db *sql.DB) *JobHandler {
	return &JobHandler{repo: repositories.NewJobRepository(db)}
}

func (h *JobHandler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	jobs, err := h.repo.List(r.Context(), userID)
	if err != nil {
		log.Printf("DB error fetching jobs for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to load jobs")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	response.RespondWithJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		JobName string  `json:"job_name"`
		PayRate float64 `json:"pay_rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.JobName == "" || req.PayRate <= 0 {
		response.RespondWithError(w, http.StatusBadRequest, "job_name and positive pay_rate are required")
		return
	}

	j := models.Job{UserID: userID, JobName: req.JobName, PayRate: req.PayRate}
	if err := h.repo.Create(r.Context(), &j); err != nil {
		log.Printf("DB error creating job for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	response.RespondWithJSON(w, http.StatusCreated, j)
}

func (h *JobHandler) UpdateJobHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	jobName := chi.URLParam(r, "jobName")

	var req struct {
		PayRate float64 `json:"pay_rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.PayRate <= 0 {
		response.RespondWithError(w, http.StatusBadRequest, "pay_rate must be positive")
		return
	}

	err := h.repo.UpdateRate(r.Context(), userID, jobName, req.PayRate)
	if errors.Is(err, sql.ErrNoRows) {
		response.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	} else if err != nil {
		log.Printf("DB error updating job %s for user %d: %v", jobName, userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to update job")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"job_name": jobName,
		"pay_rate": req.PayRate,
	})
}

func (h *JobHandler) DeleteJobHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	jobName := chi.URLParam(r, "jobName")

	err := h.repo.Delete(r.Context(), userID, jobName)
	if errors.Is(err, sql.ErrNoRows) {
		response.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	} else if err != nil {
		log.Printf("DB error deleting job %s for user %d: %v", jobName, userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Job deleted"})
}
