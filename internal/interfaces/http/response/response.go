package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "wrld-names.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. AppErrors carry their own status; plain
// domain sentinels are mapped through StatusFor.
func Error(c *gin.Context, err error) {
	if appErr, ok := err.(*domainerrors.AppError); ok {
		c.JSON(appErr.Code, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
			"error":   appErr.Message, // Backward compatibility
		})
		return
	}

	status := domainerrors.StatusFor(err)
	message := err.Error()
	if status == 500 {
		message = "internal server error"
	}
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
		"error":   message,
	})
}
