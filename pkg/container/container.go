package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"personaldata-backend/internal/config"
	infraCache "personaldata-backend/internal/infrastructure/cache"
	"personaldata-backend/internal/infrastructure/database"
	"personaldata-backend/pkg/cache"

	"personaldata-backend/internal/domains/person"
	personHandler "personaldata-backend/internal/domains/person/handler"
	personRepo "personaldata-backend/internal/domains/person/repository"
	personService "personaldata-backend/internal/domains/person/service"
)

// Container holds the application's dependency graph.
// Initialization order matters: config, infrastructure, repositories,
// services, handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB // nil when the memory store is active
	Cache  cache.Cache          // nil when Redis is unreachable

	PersonRepo    person.Repository
	PersonService person.Service
	PersonHandler *personHandler.PersonHandler
}

func NewContainer() (*Container, error) {
	log.Println("[CONTAINER] Initializing...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s, store: %s)",
		cfg.App.Environment, cfg.Store.Driver)

	if err := c.initStore(); err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	c.initCache()

	c.PersonService = personService.NewPersonService(c.PersonRepo, c.Cache)
	c.PersonHandler = personHandler.NewPersonHandler(c.PersonService)

	log.Println("[CONTAINER] Initialized successfully")
	return c, nil
}

// initStore connects the configured record store. A postgres connection
// failure falls back to the seeded in-memory store rather than refusing to
// start; the API keeps working, the data just does not survive a restart.
func (c *Container) initStore() error {
	if c.Config.Store.Driver == "memory" {
		log.Println("[CONTAINER] Using in-memory record store")
		c.PersonRepo = personRepo.NewSeededMemoryRepository()
		return nil
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		log.Printf("[CONTAINER] PostgreSQL unavailable, falling back to in-memory store: %v", err)
		c.PersonRepo = personRepo.NewSeededMemoryRepository()
		return nil
	}

	c.DB = db
	c.PersonRepo = personRepo.NewPostgresRepository(db.Pool)
	log.Println("[CONTAINER] PostgreSQL store connected")
	return nil
}

// initCache connects Redis. A cache failure is never critical.
func (c *Container) initCache() {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[CONTAINER] Redis connection failed (non-critical), caching disabled: %v", err)
			return
		}
	}

	c.Cache = redisCache
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Println("[CONTAINER] Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[CONTAINER] Failed to close Redis: %v", err)
			} else {
				log.Println("[CONTAINER] Redis connections closed")
			}
		}
	}
}
