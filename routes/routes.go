package routes

import (
	"github.com/gofiber/fiber/v2"

	"notenledger-backend/controllers"
	"notenledger-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/login", controllers.Login)
	api.Get("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Companies
	protected.Get("/companies", controllers.GetCompanies)
	protected.Post("/companies", controllers.CreateCompany)
	protected.Get("/companies/:id", controllers.GetCompany)
	protected.Put("/companies/:id", controllers.UpdateCompany)
	protected.Delete("/companies/:id", controllers.DeleteCompany)

	// Vendors
	protected.Get("/vendors", controllers.GetVendors)
	protected.Post("/vendors", controllers.CreateVendor)
	protected.Get("/vendors/:id", controllers.GetVendor)
	protected.Put("/vendors/:id", controllers.UpdateVendor)
	protected.Delete("/vendors/:id", controllers.DeleteVendor)

	// Transactions (notes with their line items)
	protected.Get("/transactions", controllers.GetTransactions)
	protected.Post("/transactions", controllers.CreateTransaction)
	protected.Get("/transactions/:id", controllers.GetTransaction)
	protected.Put("/transactions/:id", controllers.UpdateTransaction)
	protected.Post("/transactions/:id/approve", controllers.ApproveTransaction)
	protected.Get("/transactions/:id/pdf", controllers.TransactionPDF)

	// Items (read-only; written through their owning transaction)
	protected.Get("/items", controllers.GetItems)
	protected.Get("/items/:id", controllers.GetItem)

	// Users
	protected.Get("/users", controllers.GetUsers)
	protected.Post("/users", controllers.CreateUser)
	protected.Get("/users/:id", controllers.GetUser)
	protected.Put("/users/:id", controllers.UpdateUser)
	protected.Delete("/users/:id", controllers.DeleteUser)

	// Dashboards
	protected.Get("/dashboard", controllers.DashboardSummary)
	protected.Get("/user-dashboard", controllers.UserDashboardSummary)
}
