package response

import (
	"net/http"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/pagination"
	"umkm-reels/pkg/validation"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func Data(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

func MessageData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"message": message, "data": data})
}

func Paginated(c *gin.Context, data interface{}, meta pagination.Meta) {
	c.JSON(http.StatusOK, gin.H{"data": data, "meta": meta})
}

// BindError answers a failed ShouldBind* call with 422 and field errors.
func BindError(c *gin.Context, err error) {
	Error(c, nil, validation.FromBindError(err))
}

// Error writes an application error. Errors that are not *apperror.Error,
// and internal ones, become a generic 500; they are logged and sent to
// Sentry when a hub is attached to the request.
func Error(c *gin.Context, log *logger.Logger, err error) {
	appErr, ok := apperror.As(err)
	if !ok || appErr.Kind == apperror.KindInternal {
		if log != nil {
			log.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
		}
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	body := gin.H{"message": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	c.JSON(appErr.HTTPCode(), body)
}
