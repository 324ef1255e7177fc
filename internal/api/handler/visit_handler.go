package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/visits-api/internal/core/ports"
)

// VisitHandler handles HTTP requests for visits and their photos.
type VisitHandler struct {
	service ports.VisitService
}

func NewVisitHandler(service ports.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

// List handles GET /api/visits.
//
// @Summary      List visits
// @Description  Admins see every visit; everyone else sees only their own.
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page number (default 1)"
// @Param        pageSize  query     int  false  "Page size (default 10, max 100)"
// @Success      200       {object}  listVisitsResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/visits [get]
func (h *VisitHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q pageQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination parameters")
	}

	visits, err := h.service.ListVisits(c.Request().Context(), principal, q.Page, q.PageSize)
	if err != nil {
		return err
	}

	data := make([]visitResponse, 0, len(visits))
	for _, v := range visits {
		data = append(data, toVisitResponse(v))
	}
	return c.JSON(http.StatusOK, listVisitsResponse{Data: data, Pagination: echoPage(q, len(data))})
}

// Create handles POST /api/visits.
//
// @Summary      Create a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createVisitRequest  true   "Visit details"
// @Success      201              {object}  visitResponse
// @Success      200              {object}  visitResponse  "Replayed by Idempotency-Key"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /api/visits [post]
func (h *VisitHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	result, err := h.service.CreateVisit(c.Request().Context(), principal, toCreateVisitInput(req, idempotencyKey))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	c.Response().Header().Set(echo.HeaderLocation, "/api/visits/"+result.Visit.ID)
	return c.JSON(status, toVisitResponse(result.Visit))
}

// Complete handles PUT /api/visits/:visitId/complete.
//
// @Summary      Complete a visit
// @Description  Only the owner may complete a visit. Completing twice is a no-op.
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        visitId  path      string  true  "Visit id"
// @Success      200      {object}  visitResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/visits/{visitId}/complete [put]
func (h *VisitHandler) Complete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	visit, err := h.service.CompleteVisit(c.Request().Context(), principal, c.Param("visitId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVisitResponse(visit))
}

// AttachPhoto handles POST /api/visits/:visitId/photos.
//
// @Summary      Attach a product photo to a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        visitId  path      string              true  "Visit id"
// @Param        body     body      attachPhotoRequest  true  "Base64 encoded image"
// @Success      201      {object}  photoResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /api/visits/{visitId}/photos [post]
func (h *VisitHandler) AttachPhoto(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req attachPhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	photo, err := h.service.AttachPhoto(c.Request().Context(), principal, ports.AttachPhotoInput{
		VisitID:     c.Param("visitId"),
		ProductID:   req.ProductID,
		Base64Image: req.Base64Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPhotoResponse(photo))
}
