package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/users"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": common.ServiceName,
		"version": common.ServiceVersion,
	})
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"storage":  "csv",
		"data_dir": s.dataDir,
	})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var dup *users.DuplicateError
		if errors.As(err, &dup) {
			abortWithDetail(c, http.StatusBadRequest, duplicateDetail(dup))
			return
		}
		s.internalError(c, "register", err)
		return
	}

	c.JSON(http.StatusOK, newTokenResponse(res.AccessToken, res.User))
}

func duplicateDetail(dup *users.DuplicateError) string {
	if dup.Field == users.FieldEmail {
		return "Email already registered"
	}
	return "Username already exists"
}

func (s *HTTPServer) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			abortUnauthorized(c, "Incorrect username or password")
			return
		}
		s.internalError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, newTokenResponse(res.AccessToken, res.User))
}

func (s *HTTPServer) me(c *gin.Context) {
	user, err := s.users.GetUser(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			abortWithDetail(c, http.StatusNotFound, "User not found")
			return
		}
		s.internalError(c, "me", err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (s *HTTPServer) getSettings(c *gin.Context) {
	settings, err := s.settings.Get(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		s.internalError(c, "get settings", err)
		return
	}

	c.JSON(http.StatusOK, newSettingsResponse(settings))
}

func (s *HTTPServer) saveSettings(c *gin.Context) {
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Settings == nil {
		req.Settings = map[string]any{}
	}

	if _, err := s.settings.Save(c.Request.Context(), c.GetString(userIDKey), req.Settings); err != nil {
		s.logger.Error(c.Request.Context(), "save settings", "error", err)
		abortWithDetail(c, http.StatusInternalServerError, "Failed to save settings: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Settings saved successfully", Success: true})
}

func (s *HTTPServer) deleteSettings(c *gin.Context) {
	if err := s.settings.Delete(c.Request.Context(), c.GetString(userIDKey)); err != nil {
		s.logger.Error(c.Request.Context(), "delete settings", "error", err)
		abortWithDetail(c, http.StatusInternalServerError, "Failed to delete settings: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Settings deleted successfully", Success: true})
}

func (s *HTTPServer) listUsers(c *gin.Context) {
	list, err := s.users.ListUsers(c.Request.Context())
	if err != nil {
		s.internalError(c, "list users", err)
		return
	}

	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, newUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) internalError(c *gin.Context, op string, err error) {
	s.logger.Error(c.Request.Context(), op, "error", err, "request_id", c.GetString(requestIDKey))
	abortWithDetail(c, http.StatusInternalServerError, "Internal server error")
}
