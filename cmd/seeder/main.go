package main

import (
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/beeropen/scramble/internal/course"
	"github.com/beeropen/scramble/internal/database"
	"github.com/beeropen/scramble/internal/event"
	"github.com/beeropen/scramble/internal/roster"
)

const (
	teamCount = 6
	teamSize  = 4
)

// Standard par layout used when no course CSV is loaded separately.
var defaultPars = []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 4, 5}

func main() {
	log.Info("Starting database seeder...")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "outing.db"
	}
	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	rosterStore := roster.New(db)
	courseStore := course.New(db)

	startTime := time.Now()

	// Course and pars.
	c, err := courseStore.GetOrCreateCourse("Bushwood Country Club")
	if err != nil {
		log.Fatalf("Failed to create course: %s", err)
	}
	tee, err := courseStore.GetOrCreateTee(c.ID, "White")
	if err != nil {
		log.Fatalf("Failed to create tee: %s", err)
	}
	for i, par := range defaultPars {
		holeID, err := courseStore.UpsertHole(c.ID, i+1, par, nil)
		if err != nil {
			log.Fatalf("Failed to upsert hole %d: %s", i+1, err)
		}
		yards := 150 + gofakeit.Number(0, 300)
		if err := courseStore.SetTeeYardage(tee.ID, holeID, yards); err != nil {
			log.Fatalf("Failed to set yardage for hole %d: %s", i+1, err)
		}
	}
	log.Info("Seeded course", "course", c.Name, "holes", len(defaultPars))

	// Event settings pointing at the seeded course.
	eventDate := time.Now().Format("2006-01-02")
	settings := event.New(db, "Seeded Scramble", eventDate)
	if _, err := settings.Load(); err != nil {
		log.Fatalf("Failed to create event settings: %s", err)
	}
	if err := settings.SetScoringCourse(&c.ID, &tee.ID); err != nil {
		log.Fatalf("Failed to configure scoring course: %s", err)
	}

	// Teams of players; the first player of each team can score.
	for t := 0; t < teamCount; t++ {
		teamID := uuid.NewString()
		teamName := fmt.Sprintf("The %s %ss", gofakeit.AdjectiveDescriptive(), gofakeit.Animal())
		if err := rosterStore.CreateTeam(teamID, teamName); err != nil {
			log.Fatalf("Failed to create team %s: %s", teamName, err)
		}
		teeTime := fmt.Sprintf("%02d:%02d", 8+t/2, (t%2)*30)
		if err := rosterStore.SetTeeTime(teamID, teeTime); err != nil {
			log.Fatalf("Failed to set tee time for %s: %s", teamName, err)
		}

		for p := 0; p < teamSize; p++ {
			player := roster.PlayerInfo{
				ID:        uuid.NewString(),
				FirstName: gofakeit.FirstName(),
				LastName:  gofakeit.LastName(),
				Email:     gofakeit.Email(),
				Phone:     gofakeit.Phone(),
				Playing:   true,
				CanScore:  p == 0,
			}
			if err := rosterStore.UpsertPlayer(player); err != nil {
				log.Fatalf("Failed to insert player %s: %s", player.FullName(), err)
			}
			if err := rosterStore.AddPlayerToTeam(teamID, player.ID); err != nil {
				log.Fatalf("Failed to add %s to %s: %s", player.FullName(), teamName, err)
			}
		}
		log.Info("Seeded team", "name", teamName, "tee_time", teeTime)
	}

	log.Info("Seeding complete.", "teams", teamCount, "players", teamCount*teamSize, "duration", time.Since(startTime))
}
