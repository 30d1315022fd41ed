package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// ImportRowsRequest carries already decoded spreadsheet rows.
type ImportRowsRequest struct {
	Source string          `json:"source"`
	Rows   []domain.RawRow `json:"rows"`
}

// ImportRows builds a new dataset from raw rows.
// POST /v1/datasets/rows
func (h *Handler) ImportRows(c echo.Context) error {
	ctx := c.Request().Context()

	var req ImportRowsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Rows == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "rows is required"})
	}
	if req.Source == "" {
		req.Source = "api"
	}

	summary, err := h.service.ImportRows(ctx, req.Source, req.Rows)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// UploadSpreadsheet imports an xlsx workbook sent as multipart field "file".
// POST /v1/datasets/upload
func (h *Handler) UploadSpreadsheet(c echo.Context) error {
	ctx := c.Request().Context()

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "cannot read upload"})
	}
	defer f.Close()

	summary, err := h.service.ImportSpreadsheet(ctx, fh.Filename, f, c.FormValue("sheet"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// ImportSnapshot re-imports a JSON snapshot sent as the request body.
// POST /v1/datasets/snapshot
func (h *Handler) ImportSnapshot(c echo.Context) error {
	ctx := c.Request().Context()

	source := c.QueryParam("source")
	if source == "" {
		source = "snapshot"
	}
	summary, err := h.service.ImportSnapshot(ctx, source, c.Request().Body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// ExportSnapshot downloads the current dataset as a JSON snapshot.
// GET /v1/datasets/snapshot
func (h *Handler) ExportSnapshot(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.service.Current(ctx); err != nil {
		return fail(c, err)
	}
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	resp.Header().Set(echo.HeaderContentDisposition, `attachment; filename="venueboard-snapshot.json"`)
	resp.WriteHeader(http.StatusOK)
	return h.service.ExportSnapshot(ctx, resp)
}

// GetCurrentDataset summarizes the current dataset.
// GET /v1/datasets/current
func (h *Handler) GetCurrentDataset(c echo.Context) error {
	summary, err := h.service.Current(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// ListImports lists recent imports.
// GET /v1/imports
func (h *Handler) ListImports(c echo.Context) error {
	limit := 20
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	imports, err := h.service.Imports(c.Request().Context(), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"imports": imports,
	})
}
