package server

import (
	"net/http"
	"time"

	"elering2mqtt/internal/core/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/prices", s.PricesHandler)
	e.POST("/refresh", s.RefreshHandler)

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

func (s *Server) PricesHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.GetPricesRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "prices: unavailable")
	}
	response, ok := res.(domain.GetPricesResponse)
	if !ok || response.Day == nil {
		return c.String(http.StatusServiceUnavailable, "prices: no data")
	}
	return c.JSON(http.StatusOK, response.Day.Payload())
}

func (s *Server) RefreshHandler(c echo.Context) error {
	s.rootContext.Send(s.masterActor, domain.ForceRefreshRequest{})
	return c.NoContent(http.StatusAccepted)
}
