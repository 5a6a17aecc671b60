package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fieldmaker/verify-backend/internal/database/database_queries"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Service struct {
	ConnPool *pgxpool.Pool
	Queries  *database_queries.Queries
}

var (
	database     = os.Getenv("DB_DATABASE")
	password     = os.Getenv("DB_PASSWORD")
	username     = os.Getenv("DB_USERNAME")
	port         = os.Getenv("DB_PORT")
	host         = os.Getenv("DB_HOST")
	poolMaxConns = os.Getenv("DB_POOL_MAX_CONNS")
	dbInstance   *Service
)

func NewConnection(ctx context.Context, log zerolog.Logger) *Service {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	// Reuse Connection
	if dbInstance != nil {
		return dbInstance
	}
	assertEnvVars(log)

	log.Info().Msgf("Connecting to database: %s on port: %s .....", database, port)
	conStr := fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=disable pool_max_conns=%s", username, password, host, port, database, poolMaxConns)
	connectionPool, err := pgxpool.New(ctx, conStr)
	if err != nil {
		log.Fatal().Err(err).Msg("can not create the database connection pool")
	}
	err = connectionPool.Ping(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("can not ping the database")
	}
	log.Info().Msgf("Connected to database: %s on port: %s", database, port)

	if err := runMigrationsUp(connectionPool); err != nil {
		log.Fatal().Err(err).Msg("can not run the database migrations")
	}

	dbInstance = &Service{
		ConnPool: connectionPool,
		Queries:  database_queries.New(connectionPool),
	}

	return dbInstance
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *Service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	stats := make(map[string]string)

	err := s.ConnPool.Ping(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.ConnPool.Stat()
	stats["acquired_connections"] = strconv.Itoa(int(dbStats.AcquiredConns()))
	stats["cumulative_acquire_connections"] = strconv.Itoa(int(dbStats.AcquireCount()))
	stats["idle_connections"] = strconv.Itoa(int(dbStats.IdleConns()))
	stats["empty_acquire_count"] = strconv.Itoa(int(dbStats.EmptyAcquireCount()))
	stats["max_conns"] = strconv.Itoa(int(dbStats.MaxConns()))

	return stats
}

// Close closes the database connection.
func (s *Service) Close(log zerolog.Logger) {
	log.Info().Msgf("Disconnected from database: %s", database)
	s.ConnPool.Close()
}

func assertEnvVars(log zerolog.Logger) {
	for name, val := range map[string]string{
		"DB_DATABASE":       database,
		"DB_PASSWORD":       password,
		"DB_USERNAME":       username,
		"DB_PORT":           port,
		"DB_HOST":           host,
		"DB_POOL_MAX_CONNS": poolMaxConns,
	} {
		if val == "" {
			log.Fatal().Msgf("%s env var is empty", name)
		}
	}
}
