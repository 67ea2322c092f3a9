package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sims/sims-backend/internal/config"
	"github.com/sims/sims-backend/internal/database"
	"github.com/sims/sims-backend/internal/logger"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/repository"
)

var (
	firstNames = []string{"Amal", "Nimali", "Kasun", "Dilani", "Ruwan", "Tharushi", "Sahan", "Ishara", "Chamod", "Hiruni"}
	lastNames  = []string{"Perera", "Fernando", "Silva", "Jayasuriya", "Bandara", "Wickramasinghe", "Dias", "Gunawardena"}
	streams    = []string{"Science", "Commerce", "Arts", "Technology"}
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)

	const total = 50
	fmt.Printf("=== Seeding %d Students ===\n", total)

	year := time.Now().Year()
	students := make([]*model.Student, 0, total)
	for i := 0; i < total; i++ {
		gender := model.GenderMale
		if i%2 == 1 {
			gender = model.GenderFemale
		}
		grade := model.Grade12
		if i%3 == 0 {
			grade = model.Grade13
		}
		dob := model.NewDate(year-17-i%2, time.Month(i%12+1), i%28+1)

		students = append(students, &model.Student{
			AdmissionNumber: fmt.Sprintf("SEED-%d-%03d", year, i+1),
			FullName:        firstNames[i%len(firstNames)] + " " + lastNames[i%len(lastNames)],
			DateOfBirth:     &dob,
			Gender:          gender,
			ContactNumber:   fmt.Sprintf("07%08d", 10000000+i),
			Grade:           grade,
			Stream:          streams[i%len(streams)],
		})
	}

	// One transaction: either every seed row is inserted or none.
	if err := studentRepo.CreateBatch(ctx, students); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed students (already seeded?)")
	}

	fmt.Printf("Success! Inserted %d students (IDs %d-%d).\n", total, students[0].ID, students[total-1].ID)
}
