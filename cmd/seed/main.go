package main

import (
	"context"
	"log"
	"os"

	"propdesk-be/internal/entity"
	"propdesk-be/internal/repository/unitofwork"
	"propdesk-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// seedTargets are the properties, people and tags documents can be linked to.
var seedTargets = []entity.Target{
	{Id: "prop-harbor-view", Kind: entity.TargetKindProperty, Name: "Harbor View Apartments"},
	{Id: "prop-elm-street", Kind: entity.TargetKindProperty, Name: "12 Elm Street"},
	{Id: "person-maintenance-lead", Kind: entity.TargetKindPerson, Name: "Maintenance Lead"},
	{Id: "person-leasing-agent", Kind: entity.TargetKindPerson, Name: "Leasing Agent"},
	{Id: "tag-leasing", Kind: entity.TargetKindTag, Name: "Leasing"},
	{Id: "tag-emergency", Kind: entity.TargetKindTag, Name: "Emergency"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}
	orgId := os.Getenv("DEFAULT_ORGANIZATION_ID")

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	targets := uow.TargetRepository()

	color.Yellow("Seeding targets for organization %q...", orgId)

	created, skipped, failed := 0, 0, 0
	for _, t := range seedTargets {
		t.OrganizationId = orgId

		exists, err := targets.Exists(ctx, orgId, t.Kind, t.Id)
		if err != nil {
			color.Red("  x %s %s: %v", t.Kind, t.Id, err)
			failed++
			continue
		}
		if exists {
			color.Yellow("  - %s %s already exists", t.Kind, t.Id)
			skipped++
			continue
		}

		if err := targets.Create(ctx, &t); err != nil {
			color.Red("  x %s %s: %v", t.Kind, t.Id, err)
			failed++
			continue
		}
		color.Green("  + %s %s (%s)", t.Kind, t.Id, t.Name)
		created++
	}

	color.Green("Done: %d created, %d skipped, %d failed", created, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
