package ui

import (
	"net/http"

	"strbrowser/internal/errors"

	"github.com/gin-gonic/gin"
)

// statusFor maps an error code onto the HTTP status every handler answers with
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeValidationError:
		return http.StatusBadRequest
	case errors.CodeNotFound, errors.CodeEmptySelection:
		return http.StatusNotFound
	case errors.CodeDegenerateBins:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) gin.H {
	return gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	}
}

// panelError replaces a panel's content when that panel cannot be drawn
type panelError struct {
	Code    string
	Message string
}

func newPanelError(err error) *panelError {
	if err == nil {
		return nil
	}
	return &panelError{Code: errors.GetCode(err), Message: panelMessage(err)}
}

func panelMessage(err error) string {
	switch errors.GetCode(err) {
	case errors.CodeEmptySelection:
		return "No allele records for this disease."
	case errors.CodeDegenerateBins:
		return "Repeat counts span less than one bin width, so no bins can be drawn."
	}
	return err.Error()
}
