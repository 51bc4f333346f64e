package http

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kapu/social-growth-advisor/internal/domain"
	"github.com/kapu/social-growth-advisor/pkg/errors"
)

type FetchAccountRequest struct {
	Handle string `json:"handle"`
}

type FetchAccountResponse struct {
	Profile *domain.AccountProfile  `json:"profile"`
	Prefill *domain.SuggestionInput `json:"prefill"`
}

// FetchAccount handles POST /api/v1/accounts/fetch.
func (h *Handler) FetchAccount(c *gin.Context) {
	var req FetchAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError("Request body must be a JSON object.", "body", err.Error()))
		return
	}

	ctx := c.Request.Context()
	profile, prefill, err := h.profiles.Fetch(ctx, req.Handle)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.sessions.SetProfile(ctx, sessionID(c), profile, prefill); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FetchAccountResponse{Profile: profile, Prefill: prefill})
}

// SubmitFetchAccount handles the handle form on the page.
func (h *Handler) SubmitFetchAccount(c *gin.Context) {
	ctx := c.Request.Context()
	sid := sessionID(c)

	profile, prefill, err := h.profiles.Fetch(ctx, c.PostForm("handle"))
	if err != nil {
		var ve *errors.ValidationError
		if !stderrors.As(err, &ve) {
			respondPageError(c, err)
			return
		}
		if _, storeErr := h.sessions.RejectInput(ctx, sid, nil, ve.Message); storeErr != nil {
			respondPageError(c, storeErr)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if _, err := h.sessions.SetProfile(ctx, sid, profile, prefill); err != nil {
		respondPageError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
