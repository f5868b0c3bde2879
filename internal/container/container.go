package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/quiz-history-api/config"
	repo "github.com/oksasatya/quiz-history-api/internal/domain/repository"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons. Optional backends
// (Redis, GCS, Elasticsearch, RabbitMQ) may be left unset.

// Repositories is the entity store selected by STORE_DRIVER.
type Repositories struct {
	Users      repo.UserRepository
	QuizSets   repo.QuizSetRepository
	Recordings repo.RecordingRepository
}

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	repos       Repositories
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client

	metrics *prometheus.Registry
)

func SetConfig(c *config.Config)     { cfg = c }
func GetConfig() *config.Config      { return cfg }
func SetLogger(l *logrus.Logger)     { logger = l }
func GetLogger() *logrus.Logger      { return logger }
func SetPGPool(p *pgxpool.Pool)      { pgPool = p }
func GetPGPool() *pgxpool.Pool       { return pgPool }
func SetRepositories(r Repositories) { repos = r }
func GetRepositories() Repositories  { return repos }
func SetRedis(r *redis.Client)       { redisClient = r }
func GetRedis() *redis.Client        { return redisClient }
func SetGCS(s *storage.Client)       { gcsClient = s }
func GetGCS() *storage.Client        { return gcsClient }
func SetJWT(m *helpers.JWTManager)   { jwtManager = m }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetMetrics(r *prometheus.Registry)       { metrics = r }
func GetMetrics() *prometheus.Registry        { return metrics }

// GetJWT falls back to a manager built from config when none was set.
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	c := cfg
	if c == nil {
		c = config.Load()
	}
	return helpers.NewJWTManager(c.JWTSecret, c.JWTTTL)
}

// Reset clears every singleton. Tests use it between runs.
func Reset() {
	cfg, logger, pgPool = nil, nil, nil
	repos = Repositories{}
	redisClient, gcsClient, jwtManager = nil, nil, nil
	rabbitPub, esClient = nil, nil
	metrics = nil
}
