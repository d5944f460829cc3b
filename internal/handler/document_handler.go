package handler

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/middleware"
	"github.com/crewdesk/crewdesk/internal/service"
)

// DocumentHandler handles shared-file endpoints
type DocumentHandler struct {
	documentService *service.DocumentService
	maxUploadMB     int64
	allowedTypes    []string
}

// NewDocumentHandler creates a new document handler. An empty allowedTypes
// accepts any content type.
func NewDocumentHandler(documentService *service.DocumentService, maxUploadMB int64, allowedTypes []string) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxUploadMB:     maxUploadMB,
		allowedTypes:    allowedTypes,
	}
}

func (h *DocumentHandler) typeAllowed(contentType string) bool {
	if len(h.allowedTypes) == 0 {
		return true
	}
	for _, allowed := range h.allowedTypes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}

// Upload handles POST /v1/files (multipart, field "file")
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "missing 'file' field in form data")
	}

	maxBytes := h.maxUploadMB * 1024 * 1024
	if fileHeader.Size > maxBytes {
		return badRequest(c, fmt.Sprintf("file size exceeds maximum of %dMB", h.maxUploadMB))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if !h.typeAllowed(contentType) {
		return badRequest(c, fmt.Sprintf("content type %q is not allowed", contentType))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fail(c, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fail(c, err)
	}

	doc, err := h.documentService.Upload(c.Context(), middleware.GetPrincipal(c), fileHeader.Filename, data, contentType)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, doc)
}

// List handles GET /v1/files
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	docs, err := h.documentService.List(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, docs)
}

// Get handles GET /v1/files/:id
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	doc, err := h.documentService.Get(c.Context(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, doc)
}

// Share handles POST /v1/files/:id/share
func (h *DocumentHandler) Share(c *fiber.Ctx) error {
	var req struct {
		UserIDs []string `json:"user_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	doc, err := h.documentService.Share(c.Context(), middleware.GetPrincipal(c), c.Params("id"), req.UserIDs)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, doc)
}

// Delete handles DELETE /v1/files/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.documentService.Delete(c.Context(), middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
