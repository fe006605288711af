package http

import (
	"errors"
	"net/http"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
)

func StatusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrDependency):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status, body := errorBody(c, err)
	c.JSON(status, body)
}

// respondStored reports a failure that happened after the write committed.
// The body carries what was stored so the caller does not submit it again.
func respondStored(c *gin.Context, err error, stored any) {
	status, body := errorBody(c, err)
	body["stored"] = stored
	c.JSON(status, body)
}

func errorBody(c *gin.Context, err error) (int, gin.H) {
	status := StatusFor(err)
	body := gin.H{"error": err.Error()}

	var verr *common.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}

	if status >= http.StatusInternalServerError {
		logger := common.GetLoggerWith(common.LoggerNameRestfulServer)
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	return status, body
}

// respondIssues reports request-shape problems found while parsing.
func respondIssues(c *gin.Context, issues z.ZogIssueMap) {
	verr := common.NewValidationError()
	for field, list := range issues {
		if len(list) == 0 || strings.HasPrefix(field, "$") {
			continue
		}
		verr.Add(field, list[0].Message)
	}
	respondError(c, verr)
}
