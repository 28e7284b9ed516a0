package api

import (
	goerrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vishwajithsandaru/govhack-2025-factshield/app"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
)

type handlers struct {
	claims *app.ClaimService
	auth   *app.AuthService
	logger *internal.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError translates an application error into a status code and a
// flat {error: msg} body. Only the AppError message crosses the
// boundary; causes stay in the logs.
func (h *handlers) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, errorResponse{Error: errorMessage(err)})
}

func errorMessage(err error) string {
	var appErr *errors.AppError
	if goerrors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "email and password required"})
		return
	}

	result, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type claimRequest struct {
	Claim string `json:"claim"`
}

func (h *handlers) checkClaim(c *gin.Context) {
	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "claim is required"})
		return
	}

	result, err := h.claims.CheckClaim(c.Request.Context(), req.Claim)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) submitClaim(c *gin.Context) {
	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "claim is required"})
		return
	}

	claim, err := h.claims.SubmitClaim(c.Request.Context(), req.Claim)
	if err != nil {
		// The claim may already be persisted pending judgment; report
		// its id so the caller can retry via /claims/{id}/judge.
		if claim != nil {
			c.JSON(errors.HTTPStatus(err), gin.H{
				"error": errorMessage(err),
				"id":    claim.ID,
				"claim": claim.Text,
			})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": claim.ID, "claim": claim.Text})
}

func (h *handlers) judgeClaim(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Claim not found"})
		return
	}

	claim, err := h.claims.JudgeClaim(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim.View())
}

func (h *handlers) getClaim(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Claim not found"})
		return
	}

	claim, err := h.claims.GetClaim(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim.View())
}

func (h *handlers) listClaims(c *gin.Context) {
	claims, err := h.claims.ListClaims(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claimViews(claims))
}

func (h *handlers) listEscalated(c *gin.Context) {
	claims, err := h.claims.ListEscalated(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claimViews(claims))
}

func (h *handlers) escalatedForUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	limit := queryInt(c, "limit", app.DefaultQueueLimit)
	offset := queryInt(c, "offset", 0)

	claims, err := h.claims.ListEscalatedForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := claimViews(claims)
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"count":   len(items),
		"items":   items,
		"limit":   limit,
		"offset":  offset,
	})
}

type voteRequest struct {
	UserID string `json:"user_id"`
	Vote   string `json:"vote"`
}

func (h *handlers) castVote(c *gin.Context) {
	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Claim not found"})
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "vote must be 'true' or 'false'"})
		return
	}
	if req.UserID == "" {
		// Default to the token's identity when the body omits user_id.
		if user, ok := currentUser(c); ok {
			req.UserID = user.ID.String()
		}
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "user_id is required"})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	receipt, err := h.claims.CastVote(c.Request.Context(), claimID, userID, req.Vote)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func claimViews(claims []*models.Claim) []models.ClaimView {
	views := make([]models.ClaimView, 0, len(claims))
	for _, c := range claims {
		views = append(views, c.View())
	}
	return views
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
