package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(s *Server, addr string) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(s.logger),
		errorHandlingMiddleware(s.logger),
	)

	router.GET("/healthz", s.health)

	api := router.Group("/api/v1/calendar")
	{
		api.GET("/months", s.listMonths)
		api.GET("/months/:month/grid", s.monthGrid)
		api.GET("/days/:date", s.dayInfo)
		api.POST("/press", s.press)
	}

	return &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}
