package api

import (
	"context"
	"time"

	"github.com/devportfolio/portfolio-backend/database"
	"github.com/devportfolio/portfolio-backend/models"
)

// ContactObserver is told about every contact stored through the API.
type ContactObserver interface {
	ContactCreated(ctx context.Context, contact models.Contact)
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db *database.Database, contacts ContactObserver, startupTime time.Time) *routeHandlers {
	var contactOpts []resourceOption[models.Contact, models.ContactInput]
	if contacts != nil {
		contactOpts = append(contactOpts, withOnCreate[models.Contact, models.ContactInput](contacts.ContactCreated))
	}

	return &routeHandlers{
		userHandler: newResourceHandler("user", "Usuário não encontrado", store[models.User, models.UserInput](db.UserRepo())),
		projectHandler: newResourceHandler("project", "Projeto não encontrado", store[models.Project, models.ProjectInput](db.ProjectRepo()),
			withUpdateExcept[models.Project, models.ProjectInput]("UserID")),
		skillHandler:    newResourceHandler("skill", "Habilidade não encontrada", store[models.Skill, models.SkillInput](db.SkillRepo())),
		categoryHandler: newResourceHandler("category", "Categoria não encontrada", store[models.Category, models.CategoryInput](db.CategoryRepo())),
		contactHandler:  newResourceHandler("contact", "Contato não encontrado", store[models.Contact, models.ContactInput](db.ContactRepo()), contactOpts...),
		systemHandler:   newSystemHandler(db, startupTime),
	}
}
