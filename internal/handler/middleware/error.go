package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"auction-house/internal/handler/httperr"
	"auction-house/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLinesLogged = 5

// ErrorHandler renders the last public error a handler recorded and logs every
// server-side failure once, with the listing and actor it concerned.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		resp, cause, found := lastPublicError(c)
		if found && resp.Status >= http.StatusInternalServerError {
			logServerError(c, resp, cause)
		}
		if c.Writer.Written() {
			return
		}
		if found {
			c.JSON(resp.Status, resp)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}

		resp = httperr.New(http.StatusInternalServerError, httperr.CodeInternal, "Internal server error", nil)
		if last := c.Errors.Last(); last != nil {
			logServerError(c, resp, last.Err)
		}
		c.JSON(resp.Status, resp)
	}
}

func lastPublicError(c *gin.Context) (httperr.Response, error, bool) {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		err := c.Errors[i]
		if !err.IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := err.Meta.(httperr.Response); ok {
			return resp, err.Err, true
		}
	}
	return httperr.Response{}, nil, false
}

func logServerError(c *gin.Context, resp httperr.Response, cause error) {
	attrs := []any{
		slog.Int("status", resp.Status),
		slog.String("code", string(resp.Error.Code)),
		slog.String("route", c.FullPath()),
		slog.String("request_id", c.GetString("request_id")),
	}
	if id := listingParam(c); id != "" {
		attrs = append(attrs, slog.String("listing_id", id))
	}
	if actor, ok := GetActorID(c); ok {
		attrs = append(attrs, slog.String("actor_id", actor.String()))
	}
	if cause != nil {
		attrs = append(attrs,
			slog.String("error", cause.Error()),
			slog.Any("stack", errs.ExtractStackLines(cause, stackLinesLogged)),
		)
	}
	slog.ErrorContext(c.Request.Context(), "request failed", attrs...)
}

func listingParam(c *gin.Context) string {
	if !strings.Contains(c.FullPath(), "/listings/:id") {
		return ""
	}
	return c.Param("id")
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path)

				resp := httperr.New(http.StatusInternalServerError, httperr.CodeInternal, "Internal server error", nil)
				c.JSON(resp.Status, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}
