// Package rest serves the JSON API: registration, login, the current user,
// per-user settings and the user listing.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"github.com/dmitrijs2005/settingskeeper/internal/logging"
	"github.com/dmitrijs2005/settingskeeper/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address     string
	dataDir     string
	corsOrigins []string
	logger      logging.Logger
	users       *services.UserService
	settings    *services.SettingsService

	mu       sync.Mutex
	listener net.Listener
}

func NewHTTPServer(a, dataDir string, corsOrigins []string, l logging.Logger, us *services.UserService, ss *services.SettingsService) *HTTPServer {
	return &HTTPServer{
		address:     a,
		dataDir:     dataDir,
		corsOrigins: corsOrigins,
		logger:      l.With("module", "http_server"),
		users:       us,
		settings:    ss,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *HTTPServer) Router() *gin.Engine {
	// Settings numbers pass through as json.Number so large integers stay exact.
	binding.EnableDecoderUseNumber = true

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog())
	if mw := s.corsMiddleware(); mw != nil {
		r.Use(mw)
	}

	r.GET("/", s.root)
	r.GET("/health", s.health)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.GET("/me", s.requireUser(), s.me)
	}

	settings := r.Group("/settings", s.requireUser())
	{
		settings.GET("", s.getSettings)
		settings.POST("", s.saveSettings)
		settings.DELETE("", s.deleteSettings)
	}

	admin := r.Group("/admin", s.requireUser())
	{
		admin.GET("/users", s.listUsers)
	}

	return r
}

// corsMiddleware returns nil when no origins are configured. A "*" entry
// allows every origin without credentials.
func (s *HTTPServer) corsMiddleware() gin.HandlerFunc {
	if len(s.corsOrigins) == 0 {
		return nil
	}

	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.AuthorizationHeaderName, requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}

	if slices.Contains(s.corsOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = s.corsOrigins
		config.AllowCredentials = true
	}

	return cors.New(config)
}

// Addr returns the bound address once Run is listening, or nil.
func (s *HTTPServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = listen
	s.mu.Unlock()

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
