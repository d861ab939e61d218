package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skooli/timetable-backend/internal/config"
	"github.com/skooli/timetable-backend/internal/database"
	"github.com/skooli/timetable-backend/internal/logger"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/skooli/timetable-backend/internal/repository"
	"github.com/skooli/timetable-backend/internal/service"
)

// Seeds one demo school with a slot grid, two classes, a small class-subject
// catalog and an active timetable, so the API is explorable right after
// migrating.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	fmt.Println("=== Seeding demo school ===")

	var schoolID uuid.UUID
	err = pool.QueryRow(ctx,
		`INSERT INTO schools (name) VALUES ('Demo High School') RETURNING id`,
	).Scan(&schoolID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create school")
	}

	var yearID uuid.UUID
	err = pool.QueryRow(ctx,
		`INSERT INTO academic_years (school_id, name) VALUES ($1, '2026/2027') RETURNING id`, schoolID,
	).Scan(&yearID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create academic year")
	}

	classIDs := make([]uuid.UUID, 0, 2)
	for _, name := range []string{"10A", "10B"} {
		var id uuid.UUID
		err = pool.QueryRow(ctx,
			`INSERT INTO school_classes (school_id, name) VALUES ($1, $2) RETURNING id`, schoolID, name,
		).Scan(&id)
		if err != nil {
			log.Fatal().Err(err).Str("class", name).Msg("Failed to create class")
		}
		classIDs = append(classIDs, id)
	}

	teacherIDs := make(map[string]uuid.UUID)
	for _, name := range []string{"A. Okello", "B. Nansamba"} {
		var id uuid.UUID
		err = pool.QueryRow(ctx,
			`INSERT INTO teachers (school_id, name) VALUES ($1, $2) RETURNING id`, schoolID, name,
		).Scan(&id)
		if err != nil {
			log.Fatal().Err(err).Str("teacher", name).Msg("Failed to create teacher")
		}
		teacherIDs[name] = id
	}

	subjectIDs := make(map[string]uuid.UUID)
	for _, name := range []string{"Mathematics", "Physics"} {
		var id uuid.UUID
		err = pool.QueryRow(ctx,
			`INSERT INTO subjects (school_id, name) VALUES ($1, $2) RETURNING id`, schoolID, name,
		).Scan(&id)
		if err != nil {
			log.Fatal().Err(err).Str("subject", name).Msg("Failed to create subject")
		}
		subjectIDs[name] = id
	}

	// Both classes share the same teacher for Mathematics, which makes the
	// teacher-clash error easy to demo.
	for _, classID := range classIDs {
		for subject, teacher := range map[string]string{
			"Mathematics": "A. Okello",
			"Physics":     "B. Nansamba",
		} {
			_, err = pool.Exec(ctx,
				`INSERT INTO class_subjects (school_class_id, subject_id, teacher_id) VALUES ($1, $2, $3)`,
				classID, subjectIDs[subject], teacherIDs[teacher])
			if err != nil {
				log.Fatal().Err(err).Str("subject", subject).Msg("Failed to create class subject")
			}
		}
	}

	fmt.Println("=== Seeding slot grid ===")

	slotService := service.NewTimeSlotService(repository.NewTimeSlotRepository(pool))
	grid := []model.TimeSlot{
		{Name: "Period 1", StartTime: "08:00", EndTime: "09:00", Order: 1},
		{Name: "Period 2", StartTime: "09:00", EndTime: "10:00", Order: 2},
		{Name: "Morning Break", StartTime: "10:00", EndTime: "10:20", Order: 3, IsBreak: true},
		{Name: "Period 3", StartTime: "10:20", EndTime: "11:20", Order: 4},
		{Name: "Period 4", StartTime: "11:20", EndTime: "12:20", Order: 5},
		{Name: "Lunch", StartTime: "12:20", EndTime: "13:10", Order: 6, IsBreak: true},
		{Name: "Period 5", StartTime: "13:10", EndTime: "14:10", Order: 7},
	}
	for i := range grid {
		grid[i].SchoolID = schoolID
		if err := slotService.Create(ctx, &grid[i]); err != nil {
			log.Fatal().Err(err).Str("slot", grid[i].Name).Msg("Failed to create time slot")
		}
	}

	fmt.Println("=== Creating active timetable for 10A ===")

	timetableService := service.NewClassTimetableService(repository.NewClassTimetableRepository(pool))
	timetable, err := timetableService.Create(ctx, classIDs[0], yearID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create timetable")
	}
	if _, err := timetableService.SetActive(ctx, timetable.ID); err != nil {
		log.Fatal().Err(err).Msg("Failed to activate timetable")
	}

	fmt.Printf("Done. school=%s year=%s timetable=%s\n", schoolID, yearID, timetable.ID)
}
