package handler

import (
	"github.com/gofiber/fiber/v2"

	"bizportal/internal/model"
	"bizportal/internal/service"
)

type registerRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type clientRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	model.ClientProfile
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} service.AuthResult
// @Router /api/auth/register [post]
func Register(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return errInvalidBody.write(c)
		}
		res, err := svc.Register(c.UserContext(), service.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// RegisterClient godoc
// @Summary Register a client company
// @Tags clients
// @Accept json
// @Produce json
// @Success 201 {object} service.ClientAuthResult
// @Router /api/clients/register [post]
func RegisterClient(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req clientRegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return errInvalidBody.write(c)
		}
		res, err := svc.RegisterClient(c.UserContext(), service.ClientRegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Profile:  req.ClientProfile,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// Login authenticates with email and password. A non-empty role restricts
// the endpoint to accounts of that role.
//
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} service.AuthResult
// @Router /api/auth/login [post]
// @Router /api/clients/login [post]
func Login(svc service.AccountService, role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return errInvalidBody.write(c)
		}
		res, err := svc.Login(c.UserContext(), req.Email, req.Password, role)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Profile godoc
// @Summary Current client profile
// @Tags clients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.Client
// @Router /api/clients/me [get]
func Profile(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := caller(c)
		if err != nil {
			return err
		}
		client, err := svc.Profile(c.UserContext(), p)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(client)
	}
}
