package http

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kapu/social-growth-advisor/pkg/errors"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// describeError returns the user-facing message and suggestion kind for err.
// Errors outside the taxonomy are reported with the generic unknown message.
func describeError(err error) (string, string) {
	var se *errors.SuggestionError
	if stderrors.As(err, &se) {
		return se.Error(), string(se.Kind)
	}

	var ve *errors.ValidationError
	if stderrors.As(err, &ve) {
		return ve.Message, ""
	}

	var ae *errors.AppError
	if stderrors.As(err, &ae) && ae.Code == errors.CodeBusy {
		return ae.Message, ""
	}

	var st *errors.StoreError
	if stderrors.As(err, &st) {
		return errors.MsgStoreUnavailable, ""
	}

	return errors.MsgUnknownFailure, string(errors.KindUnknown)
}

func errorCode(err error) string {
	var se *errors.SuggestionError
	if stderrors.As(err, &se) {
		return se.Code
	}
	var ve *errors.ValidationError
	if stderrors.As(err, &ve) {
		return ve.Code
	}
	var st *errors.StoreError
	if stderrors.As(err, &st) {
		return st.Code
	}
	var ae *errors.AppError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return errors.CodeAppError
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	msg, kind := describeError(err)
	c.AbortWithStatusJSON(errors.StatusCodeOf(err, http.StatusInternalServerError), ErrorResponse{
		Error:     msg,
		Code:      errorCode(err),
		Kind:      kind,
		RequestID: c.GetString(ctxKeyRequestID),
	})
}
