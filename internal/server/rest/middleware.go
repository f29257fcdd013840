package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"github.com/dmitrijs2005/settingskeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	userIDKey       = "user_id"
)

// requestID tags every request with an id, reusing a client supplied one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "http request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// requireUser resolves the bearer token to an existing user and stores the
// user id in the gin context.
func (s *HTTPServer) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			abortUnauthorized(c, "Not authenticated")
			return
		}

		userID, err := s.users.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, common.ErrorInternal):
			s.logger.Error(c.Request.Context(), "authenticate", "error", err)
			abortWithDetail(c, http.StatusInternalServerError, "Internal server error")
			return
		case errors.Is(err, services.ErrUnknownUser):
			abortUnauthorized(c, "User not found")
			return
		default:
			abortUnauthorized(c, "Invalid authentication credentials")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	abortWithDetail(c, http.StatusUnauthorized, detail)
}

func abortWithDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Detail: detail})
}
