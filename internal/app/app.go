package app

import (
	"server/config"
	"server/internal/database"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/websockets"

	visaStatController "server/internal/controllers"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	Config     config.Config

	// Services
	ExportService *services.ExportService

	// Repositories
	VisaStatRepo repositories.VisaStatRepository

	// Controllers
	VisaStatController *visaStatController.VisaStatController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	exportService := services.NewExportService(config.CountryLabel)

	visaStatRepo := repositories.New(db)

	websocket := websockets.New()
	middleware := middleware.New(config)
	visaStatController := visaStatController.NewVisaStatController(visaStatRepo, exportService, websocket)

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware,
		ExportService:      exportService,
		VisaStatRepo:       visaStatRepo,
		VisaStatController: visaStatController,
		Websocket:          websocket,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.ExportService,
		a.VisaStatRepo,
		a.VisaStatController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	if a.Websocket != nil {
		a.Websocket.Close()
	}

	return a.Database.Close()
}
