package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bizportal/internal/auth"
	"bizportal/internal/http/middleware"
)

// requestError is a 400 detected while reading the request.
type requestError struct {
	code    string
	message string
}

func (e *requestError) write(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, e.code, e.message)
}

var (
	errInvalidLimit  = &requestError{"INVALID_LIMIT", "invalid limit"}
	errInvalidOffset = &requestError{"INVALID_OFFSET", "invalid offset"}
	errInvalidID     = &requestError{"INVALID_ID", "invalid id format"}
	errInvalidBody   = &requestError{"INVALID_BODY", "request body must be valid JSON"}
)

// pagination reads limit & offset query params. Bounds are applied by the services.
func pagination(c *fiber.Ctx) (int, int, *requestError) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, errInvalidLimit
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, errInvalidOffset
	}
	return limit, offset, nil
}

// pathID returns the named route param if it is a UUID.
func pathID(c *fiber.Ctx, name string) (string, *requestError) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", errInvalidID
	}
	return id, nil
}

// optionalID validates an id taken from a form field or JSON body.
// Blank is allowed and means no association.
func optionalID(raw string) (string, *requestError) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errInvalidID
	}
	return id, nil
}

// caller returns the principal stored by the role gate. Handlers are only
// mounted behind a gate, so a miss means the route is wired wrong.
func caller(c *fiber.Ctx) (auth.Principal, error) {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return auth.Principal{}, fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return p, nil
}
