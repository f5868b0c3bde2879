package router

import (
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/quiz-history-api/internal/application"
	"github.com/oksasatya/quiz-history-api/internal/container"
	"github.com/oksasatya/quiz-history-api/internal/infrastructure/cache"
	"github.com/oksasatya/quiz-history-api/internal/infrastructure/notify"
	"github.com/oksasatya/quiz-history-api/internal/infrastructure/search"
	"github.com/oksasatya/quiz-history-api/internal/infrastructure/storage"
	handlers "github.com/oksasatya/quiz-history-api/internal/interface/http"
	"github.com/oksasatya/quiz-history-api/internal/interface/middleware"
	"github.com/oksasatya/quiz-history-api/internal/router/modules"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
	mailtpl "github.com/oksasatya/quiz-history-api/pkg/mailer/templates"
)

// Services are the application services built from the container.
type Services struct {
	Creds     *app.CredentialService
	Session   *app.SessionService
	Ownership *app.OwnershipService
	Query     *app.QueryService
}

// BuildServices wires the application layer from container singletons.
// Optional backends that were not set are left out.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	repos := container.GetRepositories()

	var quizCache app.QuizSetCache
	if rdb := container.GetRedis(); rdb != nil {
		quizCache = cache.NewQuizSetCache(rdb, cfg.QuizSetCacheTTL)
	}
	var index app.RecordingIndex
	if es := container.GetES(); es != nil && cfg.ESRecordingsIndex != "" {
		index = search.NewRecordingIndex(es, cfg.ESRecordingsIndex)
	}
	var audio app.AudioStorage
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		audio = storage.NewGCSAudioStorage(gcs, cfg.GCSBucket)
	}
	var notifier app.Notifier
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		notifier = notify.NewEmailNotifier(pub, mailtpl.Brand{
			AppName:     cfg.AppName,
			CompanyName: cfg.CompanyName,
			SupportURL:  cfg.SupportURL,
		})
	}

	creds := app.NewCredentialService(container.GetJWT())
	logStrict(logger, cfg.StrictOwnership)

	return Services{
		Creds:   creds,
		Session: app.NewSessionService(repos.Users, creds, notifier, logger),
		Ownership: app.NewOwnershipService(app.OwnershipDeps{
			Users:      repos.Users,
			QuizSets:   repos.QuizSets,
			Recordings: repos.Recordings,
			Cache:      quizCache,
			Index:      index,
			Storage:    audio,
		}, cfg.StrictOwnership, logger),
		Query: app.NewQueryService(repos.Users, repos.QuizSets, repos.Recordings, quizCache, cfg.StrictOwnership, logger),
	}
}

func logStrict(logger *logrus.Logger, strict bool) {
	if !strict {
		logger.Warn("STRICT_OWNERSHIP=false: quiz-set append and by-id reads are not owner-scoped")
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	svc := BuildServices()
	logger := container.GetLogger()
	cfg := container.GetConfig()
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	if reg := container.GetMetrics(); reg != nil {
		r.Use(middleware.NewHTTPMetrics(reg).Handler())
		r.Add(modules.NewMetricsModule(reg))
	}
	r.Use(middleware.Principal(svc.Creds))

	var db modules.Pinger
	if pool := container.GetPGPool(); pool != nil {
		db = pool
	}
	r.Add(modules.NewHealthModule(cfg.StoreDriver, db))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Session, cookies, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Session, svc.Query, logger)))
	r.Add(modules.NewQuizModule(handlers.NewQuizHandler(svc.Ownership, svc.Query, logger)))
	r.Add(modules.NewRecordingModule(handlers.NewRecordingHandler(svc.Ownership, svc.Query, logger)))
}
