// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/healthz": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/api/auth/register": {"post": {"tags": ["auth"], "summary": "Register an account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}},
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/clients/register": {"post": {"tags": ["clients"], "summary": "Register a client company", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/api/clients/login": {"post": {"tags": ["clients"], "summary": "Log in as a client", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/clients/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["clients"], "summary": "Current client profile", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/clients/projects": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "List own projects", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Submit a project", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/clients/projects/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Get one own project", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Patch an own project", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Delete an own project", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/clients/projects/{id}/updates": {"post": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Append a progress note", "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}},
        "/api/clients/documents": {"get": {"security": [{"BearerAuth": []}], "tags": ["client-documents"], "summary": "List own documents", "responses": {"200": {"description": "OK"}}}},
        "/api/clients/documents/upload": {"post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["client-documents"], "summary": "Upload a document", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}}},
        "/api/clients/documents/project/{projectId}": {"get": {"security": [{"BearerAuth": []}], "tags": ["client-documents"], "summary": "List own documents of a project", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/clients/documents/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["client-documents"], "summary": "Get one own document", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["client-documents"], "summary": "Patch document metadata", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["client-documents"], "summary": "Delete an own document", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/clients/documents/{id}/download": {"get": {"security": [{"BearerAuth": []}], "tags": ["client-documents"], "summary": "Short-lived download link", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/clients/dashboard/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Own KPIs", "responses": {"200": {"description": "OK"}}}},
        "/api/documents": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin-documents"], "summary": "List own internal documents", "responses": {"200": {"description": "OK"}}}},
        "/api/documents/upload": {"post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["admin-documents"], "summary": "Upload an internal document", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/api/documents/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["admin-documents"], "summary": "Delete an own internal document", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}},
        "/api/admin/dashboard/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Cross-tenant KPIs", "responses": {"200": {"description": "OK"}}}},
        "/api/admin/clients": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List client accounts", "responses": {"200": {"description": "OK"}}}},
        "/api/admin/clients/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Activate or deactivate a client", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Business Portal API",
	Description:      "Client portal for projects, documents and dashboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
