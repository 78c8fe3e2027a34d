package handler

import (
	"github.com/gofiber/fiber/v2"

	"bizportal/internal/service"
)

// AdminDashboard godoc
// @Summary Cross-tenant KPIs
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.AdminStats
// @Router /api/admin/dashboard/stats [get]
func AdminDashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		st, err := svc.AdminStats(c.UserContext(), p)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}

// ClientDashboard godoc
// @Summary Own KPIs
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.ClientStats
// @Router /api/clients/dashboard/stats [get]
func ClientDashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		st, err := svc.ClientStats(c.UserContext(), p)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}
