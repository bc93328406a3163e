package request

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careline/careline/internal/domain/triage"
	"github.com/careline/careline/internal/platform/auth"
	"github.com/careline/careline/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Submission – reception desks and authenticated patients
	api.POST("/requests", h.CreateRequest, auth.RequireRole("reception", "patient", "nurse"))

	// Responder endpoints
	respGroup := api.Group("", auth.RequireRole("nurse"))
	respGroup.GET("/requests", h.ListRequests)
	respGroup.GET("/requests/:id", h.GetRequest)
	respGroup.PATCH("/requests/:id/status", h.UpdateStatus)
	respGroup.POST("/requests/:id/assign", h.AssignRequest)

	// Reference data for intake forms
	api.GET("/diseases", h.ListDiseases)
}

func (h *Handler) CreateRequest(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	r, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	r, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListRequests(c echo.Context) error {
	pg := pagination.FromContext(c)
	status := Status(c.QueryParam("status"))

	items, total, err := h.svc.List(c.Request().Context(), status, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type updateStatusBody struct {
	Status Status `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var body updateStatusBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	r, err := h.svc.UpdateStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type assignBody struct {
	NurseID uuid.UUID `json:"nurse_id"`
}

func (h *Handler) AssignRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var body assignBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.NurseID == uuid.Nil {
		// Default to the authenticated caller claiming the request.
		if uid, parseErr := uuid.Parse(auth.UserIDFromContext(c.Request().Context())); parseErr == nil {
			body.NurseID = uid
		}
	}
	if body.NurseID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "nurse_id is required")
	}

	r, err := h.svc.Assign(c.Request().Context(), id, body.NurseID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListDiseases(c echo.Context) error {
	return c.JSON(http.StatusOK, triage.Catalog())
}

// httpError maps domain errors to transport errors. Store failures are
// surfaced generically so internal detail never leaks to callers.
func httpError(err error) error {
	var vErr *ValidationError
	var tErr *TransitionError

	switch {
	case errors.As(err, &vErr):
		return echo.NewHTTPError(http.StatusBadRequest, vErr.Error())
	case errors.Is(err, ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, ErrDuplicate.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	case errors.As(err, &tErr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, tErr.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
