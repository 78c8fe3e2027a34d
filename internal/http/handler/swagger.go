package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	// registers the OpenAPI document read by the UI
	_ "bizportal/docs"
)

// SwaggerUI serves the UI and doc.json. The document leaves host and
// schemes empty so clients resolve them against the URL they loaded it
// from, which also covers proxies terminating TLS.
func SwaggerUI() fiber.Handler {
	return swagger.HandlerDefault
}
