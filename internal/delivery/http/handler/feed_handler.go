package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spanapp/span-backend/internal/domain"
	"github.com/spanapp/span-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{feedUseCase: feedUseCase}
}

// GetFeed handles GET /feed
// @Summary Get ranked feed
// @Description Ranked candidate list for the requesting user
// @Tags feed
// @Produce json
// @Success 200 {array} feed.FeedCandidateResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	ranked, err := h.feedUseCase.GetFeed(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build feed"})
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// Search handles GET /feed/search
// @Summary Search candidates
// @Description Filter eligible candidates by distance and free-text query
// @Tags feed
// @Produce json
// @Param q query string false "Free-text query over tags, name, bio, personality code"
// @Param max_distance query number false "Distance radius in km (defaults to preference)"
// @Success 200 {array} domain.CandidateProfile
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed/search [get]
func (h *FeedHandler) Search(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	maxDistance := 0.0
	if raw := c.Query("max_distance"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_distance"})
			return
		}
		maxDistance = parsed
	}

	results, err := h.feedUseCase.Search(c.Request.Context(), uid, c.Query("q"), maxDistance)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "search failed"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetBreakdown handles GET /feed/:profile_id/breakdown
// @Summary Score breakdown
// @Description Per-factor compatibility scores for one candidate
// @Tags feed
// @Produce json
// @Param profile_id path string true "Candidate profile ID"
// @Success 200 {object} feed.BreakdownResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed/{profile_id}/breakdown [get]
func (h *FeedHandler) GetBreakdown(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	breakdown, err := h.feedUseCase.GetBreakdown(c.Request.Context(), uid, c.Param("profile_id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		case errors.Is(err, domain.ErrCannotRankSelf):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot score own profile"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to compute breakdown"})
		}
		return
	}

	c.JSON(http.StatusOK, breakdown)
}
