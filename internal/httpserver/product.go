package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zest/product-api/internal/logging"
	"github.com/zest/product-api/internal/middleware"
	"github.com/zest/product-api/internal/service"
	"github.com/zest/product-api/internal/transport"
	"github.com/zest/product-api/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func productID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid value for parameter: id")
	}
	return uint(id), nil
}

func actor(c echo.Context) string {
	email, _ := c.Get(middleware.CtxUserEmail).(string)
	return email
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 0)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = "id"
	}
	sortDir := c.QueryParam("sortDir")
	name := c.QueryParam("name")

	pageResp, err := h.Svc.ListProducts(ctx, name, page, size, sortBy, sortDir)
	if err != nil {
		return catalogError(c, err, "list_products")
	}

	return respond(c, http.StatusOK, "Products fetched successfully", pageResp)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return catalogError(c, err, "get_product")
	}

	return respond(c, http.StatusOK, "Product fetched successfully", product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = actor(c)
	}

	product, err := h.Svc.CreateProduct(ctx, req.ProductName, createdBy)
	if err != nil {
		return catalogError(c, err, "create_product")
	}

	l.Info("create_product_success", "product_id", product.ID)
	return respond(c, http.StatusCreated, "Product created successfully", product)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_product")

	id, err := productID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	modifiedBy := req.ModifiedBy
	if modifiedBy == "" {
		modifiedBy = actor(c)
	}

	product, err := h.Svc.UpdateProduct(ctx, id, req.ProductName, modifiedBy)
	if err != nil {
		return catalogError(c, err, "update_product")
	}

	l.Info("update_product_success", "product_id", product.ID)
	return respond(c, http.StatusOK, "Product updated successfully", product)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_product")

	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return catalogError(c, err, "delete_product")
	}

	l.Info("delete_product_success", "product_id", id)
	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *CatalogHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := productID(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.ListItems(ctx, id)
	if err != nil {
		return catalogError(c, err, "list_items")
	}

	return respond(c, http.StatusOK, "Product items fetched successfully", items)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	if !h.Svc.SearchEnabled() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 0)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	pageResp, err := h.Svc.SearchProducts(ctx, query, page, size)
	if err != nil {
		return catalogError(c, err, "search_products")
	}

	return respond(c, http.StatusOK, "Products fetched successfully", pageResp)
}

func catalogError(c echo.Context, err error, op string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", op)

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn(op+"_failed", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	case errors.Is(err, service.ErrValidation):
		l.Warn(op+"_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		l.Error(op+"_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected server error")
	}
}
