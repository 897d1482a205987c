package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/mindwell/internal/cli"
	"github.com/alexanderramin/mindwell/internal/config"
	"github.com/alexanderramin/mindwell/internal/db"
	"github.com/alexanderramin/mindwell/internal/repository"
	"github.com/alexanderramin/mindwell/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger := config.NewLogger(cfg, os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	resultRepo := repository.NewSQLiteResultRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	app := &cli.App{
		Templates:     service.NewTemplateService(templateRepo, uow, observers...),
		Assessments:   service.NewAssessmentService(templateRepo, resultRepo, uow, observers...),
		Config:        cfg,
		Logger:        logger,
		IsInteractive: cli.DetectTerminal,
	}

	return cli.NewRootCmd(app).Execute()
}
