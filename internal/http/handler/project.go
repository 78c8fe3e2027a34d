package handler

import (
	"github.com/gofiber/fiber/v2"

	"bizportal/internal/model"
	"bizportal/internal/service"
)

type createProjectRequest struct {
	Name               string                `json:"name"`
	Service            string                `json:"service"`
	Description        string                `json:"description"`
	ExpectedCompletion string                `json:"expectedCompletion"`
	Timeline           []model.TimelinePhase `json:"timeline"`
}

type updateProjectRequest struct {
	Name               *string               `json:"name"`
	Service            *string               `json:"service"`
	Description        *string               `json:"description"`
	Status             *model.ProjectStatus  `json:"status"`
	Progress           *int                  `json:"progress"`
	ExpectedCompletion *string               `json:"expectedCompletion"`
	Timeline           []model.TimelinePhase `json:"timeline"`
}

type projectUpdateRequest struct {
	Message string `json:"message"`
}

// CreateProject godoc
// @Summary Submit a project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} model.Project
// @Router /api/clients/projects [post]
func CreateProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		var req createProjectRequest
		if err := c.BodyParser(&req); err != nil {
			return errInvalidBody.write(c)
		}
		project, err := svc.Create(c.UserContext(), p, service.CreateProjectInput{
			Name:               req.Name,
			Service:            req.Service,
			Description:        req.Description,
			ExpectedCompletion: req.ExpectedCompletion,
			Timeline:           req.Timeline,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(project)
	}
}

// ListProjects godoc
// @Summary List own projects
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Router /api/clients/projects [get]
func ListProjects(svc service.ProjectService) fiber.Handler {
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

// GetProject godoc
// @Summary Get one own project
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param id path string true "project id"
// @Success 200 {object} model.Project
// @Router /api/clients/projects/{id} [get]
func GetProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		id, perr := pathID(c, "id")
		if perr != nil {
			return perr.write(c)
		}
		project, err := svc.Get(c.UserContext(), p, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(project)
	}
}

// UpdateProject godoc
// @Summary Patch an own project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "project id"
// @Success 200 {object} model.Project
// @Router /api/clients/projects/{id} [put]
func UpdateProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		id, perr := pathID(c, "id")
		if perr != nil {
			return perr.write(c)
		}
		var req updateProjectRequest
		if err := c.BodyParser(&req); err != nil {
			return errInvalidBody.write(c)
		}
		project, err := svc.Update(c.UserContext(), p, id, service.UpdateProjectInput{
			Name:               req.Name,
			Service:            req.Service,
			Description:        req.Description,
			Status:             req.Status,
			Progress:           req.Progress,
			ExpectedCompletion: req.ExpectedCompletion,
			Timeline:           req.Timeline,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(project)
	}
}

// AddProjectUpdate godoc
// @Summary Append a progress note
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "project id"
// @Success 201 {object} model.Project
// @Router /api/clients/projects/{id}/updates [post]
func AddProjectUpdate(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		id, perr := pathID(c, "id")
		if perr != nil {
			return perr.write(c)
		}
		var req projectUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return errInvalidBody.write(c)
		}
		project, err := svc.AppendUpdate(c.UserContext(), p, id, req.Message)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(project)
	}
}

// DeleteProject godoc
// @Summary Delete an own project
// @Tags projects
// @Security BearerAuth
// @Param id path string true "project id"
// @Success 204
// @Router /api/clients/projects/{id} [delete]
func DeleteProject(svc service.ProjectService) fiber.Handler {
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
