// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	xerrors "insurance-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func init() {
	// amounts go out as JSON numbers, the way the dashboard reads them
	decimal.MarshalJSONWithoutQuotes = true
}

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response. err is echoed to the client, so
// callers pass nil for anything that may carry driver or SQL detail.
func Error(c *gin.Context, code int, message string, err error, data ...interface{}) {
	c.Abort()

	response := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	if len(data) > 0 {
		response.Data = data[0]
	}

	c.JSON(code, response)
}

// FromError maps a service error onto a status code. Only domain errors are
// echoed back; anything else collapses to a generic 500.
func FromError(c *gin.Context, fallback string, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, fallback, nil)
	case errors.Is(err, xerrors.ErrInvalidInput):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, xerrors.ErrConflict):
		Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, xerrors.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, xerrors.ErrForbidden):
		Error(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, xerrors.ErrRateLimited):
		Error(c, http.StatusTooManyRequests, err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, fallback, nil)
	}
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}
