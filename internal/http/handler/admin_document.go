package handler

import (
	"github.com/gofiber/fiber/v2"

	"bizportal/internal/service"
)

// UploadAdminDocument godoc
// @Summary Upload an internal document
// @Tags admin-documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document"
// @Param title formData string true "title"
// @Param description formData string false "description"
// @Param category formData string false "free text category"
// @Param project formData string false "free text project label"
// @Success 201 {object} model.AdminDocument
// @Router /api/documents/upload [post]
func UploadAdminDocument(svc service.AdminDocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		file, closer, perr := formFile(c)
		if perr != nil {
			return perr.write(c)
		}
		defer closer.Close()

		doc, err := svc.Upload(c.UserContext(), p, service.AdminUploadInput{
			File:        file,
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Category:    c.FormValue("category"),
			Project:     c.FormValue("project"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListAdminDocuments godoc
// @Summary List own internal documents
// @Tags admin-documents
// @Security BearerAuth
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Router /api/documents [get]
func ListAdminDocuments(svc service.AdminDocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		limit, offset, perr := pagination(c)
		if perr != nil {
			return perr.write(c)
		}
		res, err := svc.List(c.UserContext(), p, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteAdminDocument godoc
// @Summary Delete an own internal document
// @Tags admin-documents
// @Security BearerAuth
// @Param id path string true "document id"
// @Success 204
// @Router /api/documents/{id} [delete]
func DeleteAdminDocument(svc service.AdminDocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		id, perr := pathID(c, "id")
		if perr != nil {
			return perr.write(c)
		}
		if err := svc.Delete(c.UserContext(), p, id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
