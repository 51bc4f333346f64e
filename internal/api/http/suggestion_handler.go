package http

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kapu/social-growth-advisor/internal/domain"
	"github.com/kapu/social-growth-advisor/pkg/errors"
	"go.uber.org/zap"
)

// SuggestionRequest is the JSON body of POST /api/v1/suggestions.
type SuggestionRequest struct {
	AccountDescription string `json:"accountDescription"`
	AccountGoals       string `json:"accountGoals"`
	TrainingData       string `json:"trainingData"`
}

func (r SuggestionRequest) input() domain.SuggestionInput {
	return domain.SuggestionInput{
		AccountDescription: r.AccountDescription,
		AccountGoals:       r.AccountGoals,
		TrainingData:       r.TrainingData,
	}
}

// CreateSuggestions handles POST /api/v1/suggestions.
func (h *Handler) CreateSuggestions(c *gin.Context) {
	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError("Request body must be a JSON object.", "body", err.Error()))
		return
	}

	input := req.input()
	if err := validateInput(input); err != nil {
		respondError(c, err)
		return
	}

	bundle, err := h.runSuggestion(c.Request.Context(), sessionID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// SubmitGenerate handles the page form. Every outcome ends in a redirect back to the page,
// which renders the result from session state.
func (h *Handler) SubmitGenerate(c *gin.Context) {
	ctx := c.Request.Context()
	sid := sessionID(c)

	input := domain.SuggestionInput{
		AccountDescription: c.PostForm("accountDescription"),
		AccountGoals:       c.PostForm("accountGoals"),
		TrainingData:       c.PostForm("trainingData"),
	}

	if err := validateInput(input); err != nil {
		msg, _ := describeError(err)
		if _, storeErr := h.sessions.RejectInput(ctx, sid, &input, msg); storeErr != nil {
			respondPageError(c, storeErr)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	_, err := h.runSuggestion(ctx, sid, input)
	if err != nil && !isRecordedOutcome(err) {
		respondPageError(c, err)
		return
	}
	h.logOutcome(sid, err)

	c.Redirect(http.StatusSeeOther, "/")
}

// isRecordedOutcome reports whether err is already visible on the page:
// suggestion failures are stored in the session and busy shows the indicator.
func isRecordedOutcome(err error) bool {
	var se *errors.SuggestionError
	if stderrors.As(err, &se) {
		return true
	}
	var ve *errors.ValidationError
	if stderrors.As(err, &ve) {
		return true
	}
	var ae *errors.AppError
	return stderrors.As(err, &ae) && ae.Code == errors.CodeBusy
}

func respondPageError(c *gin.Context, err error) {
	_ = c.Error(err)
	msg, _ := describeError(err)
	c.Abort()
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(errors.StatusCodeOf(err, http.StatusInternalServerError), msg)
}

// logOutcome is shared by handlers that swallow a recorded error.
func (h *Handler) logOutcome(sid string, err error) {
	if err == nil {
		return
	}
	h.logger.Debug("Outcome recorded in session", zap.String("session", sid), zap.Error(err))
}
