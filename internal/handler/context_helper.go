package handler

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
	"github.com/noah-isme/uni-portal-api/pkg/response"
)

// studentIDParam extracts the :id path parameter. It writes a validation
// error response and returns false when the parameter is empty.
func studentIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id is required"))
		return "", false
	}
	return id, true
}
