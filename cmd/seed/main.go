package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/quiz-history-api/config"
	app "github.com/oksasatya/quiz-history-api/internal/application"
	"github.com/oksasatya/quiz-history-api/internal/container"
	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	pginfra "github.com/oksasatya/quiz-history-api/internal/infrastructure/postgres"
	"github.com/oksasatya/quiz-history-api/internal/router"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Seeding never sends mail.
	cfg.MailSendEnabled = false
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))
	container.SetRepositories(container.Repositories{
		Users:      pginfra.NewUserRepository(pool),
		QuizSets:   pginfra.NewQuizSetRepository(pool),
		Recordings: pginfra.NewRecordingRepository(pool),
	})
	svc := router.BuildServices()

	email := "demo@quiz-history.local"
	password := "password123"

	res, err := svc.Session.Signup(ctx, app.SignupInput{Email: email, Password: password, Name: "Demo User"})
	if errors.Is(err, app.ErrDuplicateAccount) {
		res, err = svc.Session.Login(ctx, email, password)
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", res.User.ID, email, password)

	p := &entity.Principal{UserID: res.User.ID, Email: res.User.Email}
	qs, err := svc.Ownership.CreateQuizSet(ctx, p)
	if err != nil {
		log.Fatalf("failed to seed quiz set: %v", err)
	}
	for _, r := range [][2]string{
		{"Capital of France?", "Paris"},
		{"2 + 2?", "4"},
	} {
		if _, err := svc.Ownership.AppendQuizResult(ctx, p, qs.ID, r[0], r[1]); err != nil {
			log.Fatalf("failed to seed quiz result: %v", err)
		}
	}
	fmt.Printf("seeded quiz set: id=%s results=2\n", qs.ID)

	rec, err := svc.Ownership.CreateRecording(ctx, p, "https://example.com/demo.webm", "Demo recording")
	if err != nil {
		log.Fatalf("failed to seed recording: %v", err)
	}
	fmt.Printf("seeded recording: id=%s\n", rec.ID)
	fmt.Printf("token: %s\n", res.Token)
}
