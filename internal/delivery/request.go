package delivery

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"catalog_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	defaultLinesPerPage = 12
	maxLinesPerPage     = 1000
)

func parseID(c *gin.Context) (int64, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id '%s'", idStr)
	}
	return id, nil
}

// parsePageRequest reads page, linesPerPage, direction and orderBy from the
// query string. orderBy must be one of sortable.
func parsePageRequest(c *gin.Context, defaultOrderBy string, sortable []string) (domain.PageRequest, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		return domain.PageRequest{}, fmt.Errorf("invalid page '%s'", c.Query("page"))
	}

	size, err := strconv.Atoi(c.DefaultQuery("linesPerPage", strconv.Itoa(defaultLinesPerPage)))
	if err != nil || size <= 0 || size > maxLinesPerPage {
		return domain.PageRequest{}, fmt.Errorf("invalid linesPerPage '%s'", c.Query("linesPerPage"))
	}
	if page > math.MaxInt/size {
		return domain.PageRequest{}, fmt.Errorf("page %d is out of range", page)
	}

	direction, err := domain.ParseDirection(c.DefaultQuery("direction", string(domain.ASC)))
	if err != nil {
		return domain.PageRequest{}, err
	}

	orderBy := c.DefaultQuery("orderBy", defaultOrderBy)
	if !slices.Contains(sortable, orderBy) {
		return domain.PageRequest{}, fmt.Errorf("invalid orderBy '%s'", orderBy)
	}

	return domain.NewPageRequest(page, size, orderBy, direction), nil
}

// bindJSON decodes and validates the request body into obj. It writes the
// error response itself and reports whether the handler may continue.
func bindJSON(c *gin.Context, logger *logrus.Logger, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		logger.Warnf("Validation failed for %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		validationResponse(c, toValidationError(verrs))
		return false
	}

	logger.Warnf("Failed to bind JSON for %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid request body: "+err.Error())
	return false
}

// locationOf is the request URL with the created id appended.
func locationOf(c *gin.Context, id int64) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch forwarded := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); forwarded {
	case "http", "https":
		scheme = forwarded
	}
	return fmt.Sprintf("%s://%s%s/%d", scheme, c.Request.Host, c.Request.URL.Path, id)
}
