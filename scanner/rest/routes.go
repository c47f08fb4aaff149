package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	docs "github.com/procwarden/procwarden/docs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))
	engine.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})))
	docs.SwaggerInfo.BasePath = "/"
	engine.GET("/swagger/*", echoSwagger.WrapHandler)

	api := engine.Group("/api", echo.WrapMiddleware(LoggerMiddleware))
	// v1 routes
	{
		apiV1 := api.Group("/v1")
		apiV1.POST("/auth/token", h.echoHandler(h.GenToken))
		apiV1.GET("/detections", h.echoHandler(h.ListDetections))

		authMiddleware := echo.WrapMiddleware(h.GetAuthMiddleware())
		scanner := apiV1.Group("/scanner")
		scanner.GET("/status", h.echoHandler(h.GetStatus))
		scanner.GET("/flagged", h.echoHandler(h.ListFlagged))
		scanner.POST("/start", h.echoHandler(h.StartScanner), authMiddleware)
		scanner.POST("/stop", h.echoHandler(h.StopScanner), authMiddleware)
		scanner.POST("/cycles", h.echoHandler(h.RunCycle), authMiddleware)
	}
}

func (h *Handler) echoHandler(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(handlerFunc))
}
