package bootstrap

import (
	"context"
	"time"

	"keep-notes-be/internal/config"
	"keep-notes-be/internal/controller"
	"keep-notes-be/internal/pkg/logger"
	"keep-notes-be/internal/pkg/mailer"
	"keep-notes-be/internal/pkg/serverutils"
	"keep-notes-be/internal/pkg/token"
	"keep-notes-be/internal/repository/unitofwork"
	"keep-notes-be/internal/service"
	"keep-notes-be/pkg/events"
	"keep-notes-be/pkg/lock"
	pktNats "keep-notes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController controller.IAuthController
	NoteController controller.INoteController

	// Background services, started by main
	NoteService     service.INoteService
	ConsumerService service.IConsumerService

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	return NewContainerWithLogger(db, cfg, sysLogger)
}

func NewContainerWithLogger(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	tokens := token.NewManager(cfg.Auth.JwtSecret, cfg.Auth.AccessTokenTTL)

	emailService := mailer.NewEmailService(mailer.Config{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Email,
		Password:   cfg.SMTP.Password,
		SenderName: cfg.SMTP.SenderName,
	}, sysLogger)

	// 2. In-process bus for outbound mail
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	eventPublisher := c.newEventPublisher(cfg)
	locker := c.newLocker(cfg)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.SMTP.WelcomeTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.SMTP.WelcomeTopic, emailService, sysLogger)

	authService := service.NewAuthService(uowFactory, tokens, publisherService, eventPublisher, sysLogger, time.Now)
	noteService := service.NewNoteService(uowFactory, locker, eventPublisher, sysLogger, time.Now)

	// 5. Controllers
	jwtMiddleware := serverutils.NewJwtMiddleware(tokens)
	maintenanceMiddleware := serverutils.MaintenanceKeyMiddleware(cfg.Trash.MaintenanceKey)

	c.AuthController = controller.NewAuthController(authService, jwtMiddleware)
	c.NoteController = controller.NewNoteController(noteService, jwtMiddleware, maintenanceMiddleware)
	c.NoteService = noteService
	c.ConsumerService = consumerService

	return c
}

// newEventPublisher falls back to a no-op bus when NATS is not configured
// or unreachable. Domain events are best effort.
func (c *Container) newEventPublisher(cfg *config.Config) events.Publisher {
	if cfg.App.NatsURL == "" {
		return events.NewNopPublisher()
	}

	natsPub, err := pktNats.NewPublisher(context.Background(), cfg.App.NatsURL)
	if err != nil {
		c.Logger.Warn("BOOTSTRAP", "NATS unavailable, domain events disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return events.NewNopPublisher()
	}

	c.closers = append(c.closers, natsPub.Close)
	return natsPub
}

// newLocker prefers Redis so sweeps are exclusive across instances.
func (c *Container) newLocker(cfg *config.Config) lock.Locker {
	if cfg.App.RedisURL == "" {
		return lock.NewMemoryLocker()
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("BOOTSTRAP", "Redis unavailable, sweep lock is process-local", map[string]interface{}{
			"error": err.Error(),
		})
		_ = rdb.Close()
		return lock.NewMemoryLocker()
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return lock.NewRedisLocker(rdb)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
