package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fitstudy/internal/delivery/http/helpers"
	"fitstudy/internal/delivery/http/middleware"
	"fitstudy/internal/domain"
)

// ListMyMissionsResponse is the success response envelope for GET /me/missions (200).
type ListMyMissionsResponse struct {
	Data  []domain.MissionStatus `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type MissionController struct {
	Logger  *slog.Logger
	Service domain.MissionService
	Now     func() time.Time
}

func NewMissionController(logger *slog.Logger, svc domain.MissionService) *MissionController {
	return &MissionController{
		Logger:  logger,
		Service: svc,
		Now:     time.Now,
	}
}

// ListMyMissions godoc
// @Summary Get my study missions
// @Description Returns the five study milestones in order with their derived status, lock flag, progress text and follow-up unlock date. Computed on every request.
// @Tags missions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyMissionsResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/missions [get]
func (c *MissionController) ListMyMissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	missions, err := c.Service.ComputeMissions(r.Context(), userID, c.Now())
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not compute missions")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, missions)
}
