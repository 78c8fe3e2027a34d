package handler

import (
	"github.com/gofiber/fiber/v2"

	"bizportal/internal/model"
	"bizportal/internal/service"
)

type updateClientDocumentRequest struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Category    *model.DocumentCategory `json:"category"`
	Tags        []string                `json:"tags"`
	ProjectID   *string                 `json:"projectId"`
}

// UploadClientDocument godoc
// @Summary Upload a document
// @Tags client-documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document"
// @Param title formData string true "title"
// @Param description formData string false "description"
// @Param category formData string false "contract, invoice, report, proposal or other"
// @Param tags formData string false "JSON array of tags"
// @Param projectId formData string false "own project id"
// @Success 201 {object} model.ClientDocument
// @Router /api/clients/documents/upload [post]
func UploadClientDocument(svc service.ClientDocumentService) fiber.Handler {
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

		tags, perr := parseTags(c.FormValue("tags"))
		if perr != nil {
			return perr.write(c)
		}
		projectID, perr := optionalID(c.FormValue("projectId"))
		if perr != nil {
			return perr.write(c)
		}

		doc, err := svc.Upload(c.UserContext(), p, service.ClientUploadInput{
			File:        file,
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Category:    model.DocumentCategory(c.FormValue("category")),
			Tags:        tags,
			ProjectID:   projectID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListClientDocuments godoc
// @Summary List own documents
// @Tags client-documents
// @Security BearerAuth
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Router /api/clients/documents [get]
// @Router /api/clients/documents/project/{projectId} [get]
func ListClientDocuments(svc service.ClientDocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		var projectID string
		if c.Params("projectId") != "" {
			id, perr := pathID(c, "projectId")
			if perr != nil {
				return perr.write(c)
			}
			projectID = id
		}
		limit, offset, perr := pagination(c)
		if perr != nil {
			return perr.write(c)
		}
		res, err := svc.List(c.UserContext(), p, projectID, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetClientDocument godoc
// @Summary Get one own document
// @Tags client-documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} model.ClientDocument
// @Router /api/clients/documents/{id} [get]
func GetClientDocument(svc service.ClientDocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		id, perr := pathID(c, "id")
		if perr != nil {
			return perr.write(c)
		}
		doc, err := svc.Get(c.UserContext(), p, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// UpdateClientDocument godoc
// @Summary Patch document metadata
// @Tags client-documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} model.ClientDocument
// @Router /api/clients/documents/{id} [put]
func UpdateClientDocument(svc service.ClientDocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		id, perr := pathID(c, "id")
		if perr != nil {
			return perr.write(c)
		}
		var req updateClientDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return errInvalidBody.write(c)
		}
		if req.ProjectID != nil {
			pid, perr := optionalID(*req.ProjectID)
			if perr != nil {
				return perr.write(c)
			}
			req.ProjectID = &pid
		}
		doc, err := svc.Update(c.UserContext(), p, id, service.ClientDocumentUpdateInput{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Tags:        req.Tags,
			ProjectID:   req.ProjectID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteClientDocument godoc
// @Summary Delete an own document
// @Tags client-documents
// @Security BearerAuth
// @Param id path string true "document id"
// @Success 204
// @Router /api/clients/documents/{id} [delete]
func DeleteClientDocument(svc service.ClientDocumentService) fiber.Handler {
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

// DownloadClientDocument godoc
// @Summary Short-lived download link
// @Tags client-documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "document id"
// @Router /api/clients/documents/{id}/download [get]
func DownloadClientDocument(svc service.ClientDocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		id, perr := pathID(c, "id")
		if perr != nil {
			return perr.write(c)
		}
		u, err := svc.DownloadURL(c.UserContext(), p, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": u})
	}
}
