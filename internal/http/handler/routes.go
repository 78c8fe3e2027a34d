package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"bizportal/internal/auth"
	"bizportal/internal/http/middleware"
	"bizportal/internal/model"
	"bizportal/internal/service"
)

// Deps are the collaborators RegisterRoutes wires into handlers.
type Deps struct {
	DB         *sql.DB
	Verifier   auth.Verifier
	Accounts   service.AccountService
	Projects   service.ProjectService
	ClientDocs service.ClientDocumentService
	AdminDocs  service.AdminDocumentService
	Dashboard  service.DashboardService
	// AuthLimiter guards the credential endpoints. Nil disables it.
	AuthLimiter fiber.Handler
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Identity reaches handlers only through the role gates.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	limit := d.AuthLimiter
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}
	adminOnly := middleware.AdminOnly(d.Verifier)
	clientOnly := middleware.ClientOnly(d.Verifier)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", limit, Register(d.Accounts))
	authGroup.Post("/login", limit, Login(d.Accounts, ""))

	clients := api.Group("/clients")
	clients.Post("/register", limit, RegisterClient(d.Accounts))
	clients.Post("/login", limit, Login(d.Accounts, model.RoleClient))
	clients.Get("/me", clientOnly, Profile(d.Accounts))

	projects := clients.Group("/projects", clientOnly)
	projects.Post("/", CreateProject(d.Projects))
	projects.Get("/", ListProjects(d.Projects))
	projects.Get("/:id", GetProject(d.Projects))
	projects.Put("/:id", UpdateProject(d.Projects))
	projects.Delete("/:id", DeleteProject(d.Projects))
	projects.Post("/:id/updates", AddProjectUpdate(d.Projects))

	clientDocs := clients.Group("/documents", clientOnly)
	clientDocs.Post("/upload", UploadClientDocument(d.ClientDocs))
	clientDocs.Get("/", ListClientDocuments(d.ClientDocs))
	clientDocs.Get("/project/:projectId", ListClientDocuments(d.ClientDocs))
	clientDocs.Get("/:id/download", DownloadClientDocument(d.ClientDocs))
	clientDocs.Get("/:id", GetClientDocument(d.ClientDocs))
	clientDocs.Put("/:id", UpdateClientDocument(d.ClientDocs))
	clientDocs.Delete("/:id", DeleteClientDocument(d.ClientDocs))

	clients.Get("/dashboard/stats", clientOnly, ClientDashboard(d.Dashboard))

	adminDocs := api.Group("/documents", adminOnly)
	adminDocs.Post("/upload", UploadAdminDocument(d.AdminDocs))
	adminDocs.Get("/", ListAdminDocuments(d.AdminDocs))
	adminDocs.Delete("/:id", DeleteAdminDocument(d.AdminDocs))

	admin := api.Group("/admin", adminOnly)
	admin.Get("/dashboard/stats", AdminDashboard(d.Dashboard))
	admin.Get("/clients", ListClients(d.Accounts))
	admin.Patch("/clients/:id/status", SetClientStatus(d.Accounts))
}
