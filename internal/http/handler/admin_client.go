package handler

import (
	"github.com/gofiber/fiber/v2"

	"bizportal/internal/service"
)

type clientStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// ListClients godoc
// @Summary List client accounts
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Router /api/admin/clients [get]
func ListClients(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		limit, offset, perr := pagination(c)
		if perr != nil {
			return perr.write(c)
		}
		res, err := svc.ListClients(c.UserContext(), p, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// SetClientStatus godoc
// @Summary Activate or deactivate a client
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "client id"
// @Success 204
// @Router /api/admin/clients/{id}/status [patch]
func SetClientStatus(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		id, perr := pathID(c, "id")
		if perr != nil {
			return perr.write(c)
		}
		var req clientStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return errInvalidBody.write(c)
		}
		if req.IsActive == nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "isActive is required")
		}
		if err := svc.SetClientActive(c.UserContext(), p, id, *req.IsActive); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
