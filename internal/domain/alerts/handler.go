package alerts

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careboard/careboard/internal/domain/patient"
	"github.com/careboard/careboard/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	readGroup.GET("/patients/:id/alerts", h.GetFeed)
	readGroup.GET("/patients/:id/schedule", h.GetSchedule)
	readGroup.POST("/patients/:id/alerts/:alert_id/ack", h.Acknowledge)

	adminGroup := api.Group("", auth.RequireRole("admin"))
	adminGroup.GET("/alerts/summary", h.GetSummary)
}

// at returns the computation instant: the optional ?at= query parameter in
// the schedule layout, else the current time.
func at(c echo.Context) (time.Time, error) {
	raw := c.QueryParam("at")
	if raw == "" {
		return time.Now(), nil
	}
	t, ok := ParseClock(raw)
	if !ok {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid at parameter")
	}
	return t, nil
}

func (h *Handler) GetFeed(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	now, err := at(c)
	if err != nil {
		return err
	}
	feed, err := h.svc.Feed(c.Request().Context(), id, now)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, feed)
}

func (h *Handler) GetSchedule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	now, err := at(c)
	if err != nil {
		return err
	}
	entries, err := h.svc.Schedule(c.Request().Context(), id, now)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) Acknowledge(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	alertID := c.Param("alert_id")
	if alertID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}
	if err := h.svc.Acknowledge(c.Request().Context(), id, alertID); err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetSummary(c echo.Context) error {
	now, err := at(c)
	if err != nil {
		return err
	}
	rows, err := h.svc.Summary(c.Request().Context(), now)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}
