package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "

	EndpointPathAlive   = "/alive/"
	EndpointPathMetrics = "/metrics/"
)

// CreateRestService creates the REST api. Request metrics are registered with
// registerer and the metrics endpoint serves everything known to gatherer.
func CreateRestService(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *echo.Echo {
	echoRest := CreateWebserver()

	echoRest.Use(middleware.Logger())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "pid2go",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == EndpointPathMetrics
		},
	}))

	echoRest.GET(EndpointPathAlive, isAlive)
	echoRest.GET(EndpointPathMetrics, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))

	registerLoopEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
