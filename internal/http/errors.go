package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/repository"
)

// badRequest classifies a binding/validation failure.
func badRequest(err error) error {
	return apperr.Wrap(apperr.KindBadRequest, err.Error(), err)
}

type errorBody struct {
	Code    apperr.Kind `json:"code"`
	Message string      `json:"message"`
}

// abortWithError renders the taxonomy error for err and stops the chain.
// Missing rows map to NOT_FOUND; anything unclassified surfaces as
// INTERNAL with a generic message.
func abortWithError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.Is(err, repository.ErrNotFound) && !errors.As(err, &appErr) {
		appErr = apperr.New(apperr.KindNotFound, "not found")
	} else {
		appErr = apperr.From(err)
	}

	c.AbortWithStatusJSON(appErr.Kind.Status(), gin.H{
		"error": errorBody{Code: appErr.Kind, Message: appErr.Message},
	})
}
