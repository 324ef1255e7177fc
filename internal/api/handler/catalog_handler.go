package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/visits-api/internal/core/ports"
)

// CatalogHandler serves stores and products. Role gating for mutations is
// applied by the router.
type CatalogHandler struct {
	stores   ports.StoreService
	products ports.ProductService
}

func NewCatalogHandler(stores ports.StoreService, products ports.ProductService) *CatalogHandler {
	return &CatalogHandler{stores: stores, products: products}
}

// ListStores handles GET /api/stores.
//
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page number (default 1)"
// @Param        pageSize  query     int  false  "Page size (default 10, max 100)"
// @Success      200       {object}  listStoresResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/stores [get]
func (h *CatalogHandler) ListStores(c echo.Context) error {
	var q pageQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination parameters")
	}

	stores, err := h.stores.List(c.Request().Context(), q.Page, q.PageSize)
	if err != nil {
		return err
	}

	data := make([]storeResponse, 0, len(stores))
	for _, s := range stores {
		data = append(data, toStoreResponse(s))
	}
	return c.JSON(http.StatusOK, listStoresResponse{Data: data, Pagination: echoPage(q, len(data))})
}

// CreateStore handles POST /api/stores.
//
// @Summary      Create a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      storeRequest  true  "Store"
// @Success      201   {object}  storeResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/stores [post]
func (h *CatalogHandler) CreateStore(c echo.Context) error {
	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	store, err := h.stores.Create(c.Request().Context(), req.Name, req.Location)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toStoreResponse(store))
}

// UpdateStore handles PUT /api/stores/:storeId.
//
// @Summary      Update a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        storeId  path      string        true  "Store id"
// @Param        body     body      storeRequest  true  "Store"
// @Success      200      {object}  storeResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/stores/{storeId} [put]
func (h *CatalogHandler) UpdateStore(c echo.Context) error {
	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	store, err := h.stores.Update(c.Request().Context(), c.Param("storeId"), req.Name, req.Location)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStoreResponse(store))
}

// DeleteStore handles DELETE /api/stores/:storeId.
//
// @Summary      Delete a store
// @Tags         stores
// @Security     BearerAuth
// @Param        storeId  path  string  true  "Store id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/stores/{storeId} [delete]
func (h *CatalogHandler) DeleteStore(c echo.Context) error {
	if err := h.stores.Delete(c.Request().Context(), c.Param("storeId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListProducts handles GET /api/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page number (default 1)"
// @Param        pageSize  query     int  false  "Page size (default 10, max 100)"
// @Success      200       {object}  listProductsResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var q pageQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination parameters")
	}

	products, err := h.products.List(c.Request().Context(), q.Page, q.PageSize)
	if err != nil {
		return err
	}

	data := make([]productResponse, 0, len(products))
	for _, p := range products {
		data = append(data, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, listProductsResponse{Data: data, Pagination: echoPage(q, len(data))})
}

// CreateProduct handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  productResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.products.Create(c.Request().Context(), req.Name, req.Category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}
