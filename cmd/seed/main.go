package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/config"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/application"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	pginfra "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/infrastructure/postgres"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

// sample directory; scores are user id -> score
var samples = []struct {
	fields entity.UniversityFields
	scores map[string]int
}{
	{
		fields: entity.UniversityFields{
			Name:                entity.Text("Oguz Han Engineering and Technology University", "Инженерно-технологический университет имени Огуз хана", "Oguz han adyndaky Inženerçilik we tehnologiýalar uniwersiteti"),
			Description:         entity.Text("Engineering, IT and applied sciences.", "Инженерия, ИТ и прикладные науки.", "Inženerçilik, IT we amaly ylymlar."),
			Duration:            entity.Text("4 years", "4 года", "4 ýyl"),
			ApplicationDeadline: strp("2026-07-31"),
			Age:                 intp(17),
			OfficialLink:        strp("https://etut.edu.tm"),
		},
		scores: map[string]int{"seed-user-1": 5, "seed-user-2": 4, "seed-user-3": 5},
	},
	{
		fields: entity.UniversityFields{
			Name:        entity.Text("Magtymguly Turkmen State University", "Туркменский государственный университет имени Махтумкули", "Magtymguly adyndaky Türkmen döwlet uniwersiteti"),
			Description: entity.Text("Classical university with humanities and natural sciences.", "Классический университет гуманитарных и естественных наук.", "Ynsanperwer we tebigy ylymlar boýunça nusgawy uniwersitet."),
			Dormitory:   entity.Text("Available", "Предоставляется", "Berilýär"),
		},
		scores: map[string]int{"seed-user-1": 3, "seed-user-2": 3},
	},
	{
		fields: entity.UniversityFields{
			Name:        entity.Text("International University for the Humanities and Development", "Международный университет гуманитарных наук и развития", "Halkara ynsanperwer ylymlary we ösüş uniwersiteti"),
			Description: entity.Text("English-medium programmes in economics and IT.", "Программы на английском по экономике и ИТ.", "Ykdysadyýet we IT boýunça iňlis dilindäki maksatnamalar."),
		},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	if _, err := application.NewAdminBootstrapper(users, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, logger).Run(ctx); err != nil {
		logger.Fatalf("admin bootstrap failed: %v", err)
	}

	universities := pginfra.NewUniversityRepository(pool)
	ratings := pginfra.NewRatingRepository(pool)

	existing, err := universities.List(ctx)
	if err != nil {
		logger.Fatalf("failed to list universities: %v", err)
	}
	if len(existing) > 0 {
		logger.WithField("count", len(existing)).Info("universities already present, skipping seed")
		return
	}

	for _, s := range samples {
		u, err := universities.Create(ctx, s.fields)
		if err != nil {
			logger.Fatalf("failed to seed university: %v", err)
		}
		for userID, score := range s.scores {
			if err := ratings.Create(ctx, &entity.Rating{UniversityID: u.ID, UserID: userID, Score: score}); err != nil {
				logger.Fatalf("failed to seed rating: %v", err)
			}
		}
		logger.WithFields(logrus.Fields{"id": u.ID, "name": u.Name.Get(entity.LocaleEN), "ratings": len(s.scores)}).Info("seeded university")
	}
}
