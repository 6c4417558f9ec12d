package api

import "github.com/devportfolio/portfolio-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler     resourceHandler[models.User, models.UserInput]
	projectHandler  resourceHandler[models.Project, models.ProjectInput]
	skillHandler    resourceHandler[models.Skill, models.SkillInput]
	categoryHandler resourceHandler[models.Category, models.CategoryInput]
	contactHandler  resourceHandler[models.Contact, models.ContactInput]
	systemHandler   systemHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// MessageResponse is the body of the root banner.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
