package httpapi

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

// writeError renders err as the ErrorEnvelope wire format at the status
// code its Code maps to, mirroring the escaping/response discipline the
// teacher's handlers/common.go applies at its own response boundary.
func writeError(c *gin.Context, err *apperrors.AppError) {
	c.JSON(err.Code.HTTPStatus(), err.Envelope())
}
