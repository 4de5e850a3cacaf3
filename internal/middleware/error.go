package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "posfinance/internal/errors"
	"posfinance/internal/logger"
)

// ErrorHandler renders the last error attached with c.Error as the standard
// {"error":{"code","message"}} body. Binding errors become INVALID_INPUT;
// anything that is not an AppError is logged and reported as INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		appErr := toAppError(last)
		log := logger.With("request_id", c.GetString(requestIDKey), "path", c.Request.URL.Path)
		switch {
		case appErr.Internal != nil:
			log.Errorw("request failed", "code", appErr.Code, "internal", appErr.Internal.Error())
		case appErr.Code == apperrors.ErrInternalServer.Code:
			log.Errorw("unexpected error", "error", last.Err.Error(), "method", c.Request.Method)
		}

		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}

func toAppError(e *gin.Error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(e.Err, &appErr) {
		return appErr
	}
	if e.IsType(gin.ErrorTypeBind) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, e.Err.Error())
	}
	return apperrors.ErrInternalServer
}
