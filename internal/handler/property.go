package handler

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-backoffice/internal/media"
	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
)

// PropertyHandler serves /api/properties and the image upload endpoints.
type PropertyHandler struct {
	Properties repository.PropertyRepository
	Uploader   media.Uploader
}

func NewPropertyHandler(p repository.PropertyRepository, u media.Uploader) *PropertyHandler {
	return &PropertyHandler{Properties: p, Uploader: u}
}

// Create handles POST /api/properties.
func (h *PropertyHandler) Create(c echo.Context) error {
	var in model.PropertyPatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	p := &model.Property{}
	in.Apply(p)
	p.Normalize()
	if err := c.Validate(p); err != nil {
		return respondError(c, err, "property")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Properties.Create(ctx, p); err != nil {
		return respondError(c, err, "property")
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /api/properties?type=&rented=&page=&limit=.
func (h *PropertyHandler) List(c echo.Context) error {
	rented, err := boolQuery(c, "rented")
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.list(c, repository.PropertyFilter{
		Type:   model.PropertyType(strings.TrimSpace(c.QueryParam("type"))),
		Rented: rented,
	})
}

// Available handles GET /api/properties/available: properties not rented.
func (h *PropertyHandler) Available(c echo.Context) error {
	return h.list(c, repository.PropertyFilter{
		Type:   model.PropertyType(strings.TrimSpace(c.QueryParam("type"))),
		Rented: boolPtr(false),
	})
}

func (h *PropertyHandler) list(c echo.Context, f repository.PropertyFilter) error {
	pg := pageFrom(c)
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, total, err := h.Properties.List(ctx, f, pg)
	if err != nil {
		return respondError(c, err, "property")
	}
	return c.JSON(http.StatusOK, list(items, total, pg))
}

// Get handles GET /api/properties/:id.
func (h *PropertyHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Properties.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "property")
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT and PATCH /api/properties/:id.  Both merge the
// supplied fields into the stored record.
func (h *PropertyHandler) Update(c echo.Context) error {
	var in model.PropertyPatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Properties.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "property")
	}
	in.Apply(p)
	p.Normalize()
	if err := c.Validate(p); err != nil {
		return respondError(c, err, "property")
	}
	if err := h.Properties.Update(ctx, p); err != nil {
		return respondError(c, err, "property")
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/properties/:id.  Tenants and requests that
// reference the property are left untouched.
func (h *PropertyHandler) Delete(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Properties.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "property")
	}
	return deleted(c, "property")
}

// Upload handles POST /api/upload: multipart field "photo" in, {"url"} out.
func (h *PropertyHandler) Upload(c echo.Context) error {
	url, err := h.uploadPhoto(c)
	if err != nil || url == "" {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

// UploadImage handles POST /api/properties/:id/image and stores the hosted
// URL on the property.  The upload runs outside the store timeouts.
func (h *PropertyHandler) UploadImage(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	p, err := h.Properties.GetByID(ctx, c.Param("id"))
	cancel()
	if err != nil {
		return respondError(c, err, "property")
	}

	url, err := h.uploadPhoto(c)
	if err != nil || url == "" {
		return err
	}

	ctx, cancel = withTimeout(c)
	defer cancel()
	p.ImageURL = url
	if err := h.Properties.Update(ctx, p); err != nil {
		return respondError(c, err, "property")
	}
	return c.JSON(http.StatusOK, p)
}

// uploadPhoto sends the "photo" form file to the image host.  An empty URL
// means a response has already been written.
func (h *PropertyHandler) uploadPhoto(c echo.Context) (string, error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		return "", badRequest(c, "no image file provided")
	}
	f, err := fh.Open()
	if err != nil {
		return "", badRequest(c, "unreadable image file")
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", badRequest(c, "unreadable image file")
	}
	head = head[:n]
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return "", badRequest(c, "photo must be an image")
	}

	url, err := h.Uploader.Upload(c.Request().Context(), fh.Filename, io.MultiReader(bytes.NewReader(head), f))
	if err != nil {
		return "", respondError(c, err, "image")
	}
	return url, nil
}
