package api

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/simulation"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/qdm12/reprint"
)

type SetpointRequest struct {
	Value *float64 `json:"value"`
}

func registerLoopEndpoints(rest *echo.Echo) {
	group := rest.Group("/loop")

	group.GET("/", getLoops)
	group.GET("/:"+urlParamId+"/", getLoop)
	group.POST("/:"+urlParamId+"/setpoint/", setSetpoint)
	group.POST("/:"+urlParamId+"/reset/", resetLoop)
}

// returns the state of all currently running loops
func getLoops(c echo.Context) error {
	states := map[string]simulation.SessionState{}
	for id, session := range simulation.SessionMap.Items() {
		states[id] = session.Snapshot()
	}
	data := reprint.This(states)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	session, exists := simulation.SessionMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, session.Snapshot(), indentationChar)
	}
}

// overrides the target of a running loop
func setSetpoint(c echo.Context) error {
	id := c.Param(urlParamId)
	session, exists := simulation.SessionMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	var request SetpointRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, "Invalid request body")
	}
	if request.Value == nil {
		return returnBadRequest(c, "Missing field 'value'")
	}
	if math.IsNaN(*request.Value) || math.IsInf(*request.Value, 0) {
		return returnBadRequest(c, "Field 'value' must be a finite number")
	}

	ui.Info("Loop %s: setpoint changed to %.2f via api", id, *request.Value)
	session.SetTarget(*request.Value)
	return c.JSONPretty(http.StatusOK, session.Snapshot(), indentationChar)
}

func resetLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	session, exists := simulation.SessionMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	ui.Info("Loop %s: reset via api", id)
	session.Reset()
	return c.JSONPretty(http.StatusOK, session.Snapshot(), indentationChar)
}
