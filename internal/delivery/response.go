package delivery

import (
	"errors"
	"net/http"
	"time"

	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StandardError is the body of every failed request.
type StandardError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

type ValidationErrorResponse struct {
	StandardError
	Errors []usecase.FieldMessage `json:"errors"`
}

func newStandardError(c *gin.Context, status int, title, message string) StandardError {
	return StandardError{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     title,
		Message:   message,
		Path:      c.Request.URL.Path,
	}
}

func ErrorResponse(c *gin.Context, status int, title, message string) {
	c.AbortWithStatusJSON(status, newStandardError(c, status, title, message))
}

func validationResponse(c *gin.Context, verr *usecase.ValidationError) {
	status := http.StatusUnprocessableEntity
	errs := verr.Errors
	if errs == nil {
		errs = []usecase.FieldMessage{}
	}
	c.AbortWithStatusJSON(status, ValidationErrorResponse{
		StandardError: newStandardError(c, status, "Validation exception", verr.Msg),
		Errors:        errs,
	})
}

// writeError maps a use case error onto its HTTP status and error body.
func writeError(c *gin.Context, logger logrus.FieldLogger, err error) {
	var (
		notFound *usecase.ResourceNotFoundError
		dbErr    *usecase.DatabaseError
		verr     *usecase.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		logger.Warnf("Handler Error: %v", err)
		ErrorResponse(c, http.StatusNotFound, "Resource not found", notFound.Msg)
	case errors.As(err, &dbErr):
		logger.Warnf("Handler Error: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Database exception", dbErr.Msg)
	case errors.As(err, &verr):
		logger.Warnf("Handler Error: %v", err)
		validationResponse(c, verr)
	default:
		logger.Errorf("Handler Error: Unexpected error: %v", err)
		_ = c.Error(err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal error", "Internal server error")
	}
}
