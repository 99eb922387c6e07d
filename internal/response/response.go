package response

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transmovil-cr/service-routes/internal/domain/transit"
)

// Body is the JSON envelope returned by every API endpoint.
type Body struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes a 200 response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Body{
		Error: &ErrorBody{Code: "BAD_REQUEST", Message: message},
	})
}

// Error maps err to a status code and writes it.
func Error(c *gin.Context, err error) {
	status, code := StatusFor(err)
	c.JSON(status, Body{
		Error: &ErrorBody{Code: code, Message: err.Error()},
	})
}

// StatusFor maps an error to its HTTP status and error code.
func StatusFor(err error) (int, string) {
	var missing *transit.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, "INVALID_DATASET"
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusServiceUnavailable, "DATASET_UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
