package di

import (
	"gorm.io/gorm"

	"foresight_backend/internal/feature/project/adapters"
	"foresight_backend/internal/feature/project/transport/handler"
	"foresight_backend/internal/feature/project/usecase"
)

// NewProjectHandler creates the project handler backed by the GORM repositories.
func NewProjectHandler(db *gorm.DB) *handler.ProjectHandler {
	uc := usecase.NewProjectUsecase(adapters.NewProjectRepository(db), adapters.NewProfileRepository(db))
	return handler.NewProjectHandler(uc)
}
