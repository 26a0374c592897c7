package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/innoviii/entrance-backend/internal/config"
	"github.com/innoviii/entrance-backend/internal/database"
	"github.com/innoviii/entrance-backend/internal/logger"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/innoviii/entrance-backend/internal/repository"
	"github.com/innoviii/entrance-backend/internal/service"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
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

	adminRepo := repository.NewAdminRepository(pool)
	testRepo := repository.NewTestRepository(pool)
	adminService := service.NewAdminService(adminRepo)

	fmt.Println("=== Seeding Admin and Sample Tests ===")

	// ─── Admin Account ─────────────────────────────────────────────────
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("SEED_ADMIN_PASS")
	if password == "" {
		password = "changeme"
	}

	var existingID int
	err = pool.QueryRow(ctx, "SELECT id FROM admins WHERE email = $1", email).Scan(&existingID)
	switch {
	case err == nil:
		fmt.Printf("Admin %s already exists with ID: %d\n", email, existingID)
	case err == pgx.ErrNoRows:
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash password")
		}
		admin := &model.Admin{
			Name:         "Seed Admin",
			Email:        email,
			PasswordHash: string(hashed),
		}
		if err := adminService.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("Failed to create admin")
		}
		fmt.Printf("Created admin %s with ID: %d\n", email, admin.ID)
	default:
		log.Fatal().Err(err).Msg("Failed to check existing admin")
	}

	// ─── Sample Tests ──────────────────────────────────────────────────
	memberTest := &model.Test{
		Title:           "Member Entrance Test",
		Role:            model.RoleMember,
		Description:     "Behavioral questions for prospective members.",
		DurationMinutes: 30,
		Published:       true,
		Questions: []model.Question{
			{
				ID:     "m1",
				Type:   model.QuestionFreeText,
				Prompt: "Why do you want to join, and what do you hope to get out of it?",
				Marks:  10,
			},
			{
				ID:     "m2",
				Type:   model.QuestionFreeText,
				Prompt: "Describe a project you are proud of and your role in it.",
				Marks:  10,
			},
			{
				ID:      "m3",
				Type:    model.QuestionTrueFalse,
				Prompt:  "Are you able to attend weekly sessions?",
				Options: []string{"Yes", "No"},
				Key:     []int{0},
				Marks:   2,
			},
		},
	}

	mentorTest := &model.Test{
		Title:           "Mentor Entrance Test",
		Role:            model.RoleMentor,
		Description:     "Mixed technical screening for mentor applicants.",
		DurationMinutes: 45,
		Published:       true,
		Questions: []model.Question{
			{
				ID:      "q1",
				Type:    model.QuestionSingleChoice,
				Prompt:  "Which HTTP status code indicates a resource was created?",
				Options: []string{"200", "201", "204", "301"},
				Key:     []int{1},
				Marks:   5,
			},
			{
				ID:      "q2",
				Type:    model.QuestionMultiSelect,
				Prompt:  "Select all relational databases.",
				Options: []string{"PostgreSQL", "Redis", "MySQL", "MongoDB"},
				Key:     []int{0, 2},
				Marks:   5,
			},
			{
				ID:      "q3",
				Type:    model.QuestionTrueFalse,
				Prompt:  "HTTP is a stateful protocol.",
				Options: []string{"True", "False"},
				Key:     []int{1},
				Marks:   3,
			},
			{
				ID:     "q4",
				Type:   model.QuestionFreeText,
				Prompt: "Explain how you would mentor a beginner through their first code review.",
				Marks:  10,
			},
		},
	}

	for _, t := range []*model.Test{memberTest, mentorTest} {
		var exists int
		err := pool.QueryRow(ctx, "SELECT 1 FROM tests WHERE title = $1", t.Title).Scan(&exists)
		if err == nil {
			fmt.Printf("Test %q already exists, skipping\n", t.Title)
			continue
		}
		if err != pgx.ErrNoRows {
			log.Fatal().Err(err).Msg("Failed to check existing test")
		}
		if err := testRepo.Create(ctx, t); err != nil {
			log.Fatal().Err(err).Str("title", t.Title).Msg("Failed to create test")
		}
		fmt.Printf("Created test %q with ID: %s\n", t.Title, t.ID)
	}

	fmt.Println("\nSeed completed!")
}
