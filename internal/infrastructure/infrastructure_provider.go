package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"freightdesk/services/support-api/internal/config"
	"freightdesk/services/support-api/internal/domain/conversation"
	"freightdesk/services/support-api/internal/domain/shipment"
	"freightdesk/services/support-api/internal/domain/user"
	"freightdesk/services/support-api/internal/infrastructure/audit"
	"freightdesk/services/support-api/internal/infrastructure/auth"
	"freightdesk/services/support-api/internal/infrastructure/database"
	"freightdesk/services/support-api/internal/infrastructure/database/repository"
	"freightdesk/services/support-api/internal/infrastructure/database/transaction"
	"freightdesk/services/support-api/internal/infrastructure/hub"
	"freightdesk/services/support-api/internal/infrastructure/identity"
	"freightdesk/services/support-api/internal/infrastructure/janitor"
	"freightdesk/services/support-api/internal/infrastructure/logger"
	"freightdesk/services/support-api/internal/infrastructure/mailer"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideJWTValidator provides a JWT validator backed by the identity
// provider's JWKS endpoint. The JWKS URL is resolved through OIDC
// discovery when only a discovery URL is configured.
func ProvideJWTValidator(cfg *config.Config, log zerolog.Logger) (*auth.JWTValidator, error) {
	ctx := context.Background()
	jwksURL, err := cfg.ResolveJWKSURL(ctx)
	if err != nil {
		return nil, err
	}
	return auth.NewJWTValidator(
		ctx,
		jwksURL,
		cfg.Issuer,
		cfg.Audience,
		cfg.RefreshJWKSInterval,
		cfg.AuthClockSkew,
		log,
	)
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.GetDatabaseWriteDSN(), cfg.GetDatabaseReadDSN())
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideIdentityClient provides the identity provider client used for
// account provisioning.
func ProvideIdentityClient(cfg *config.Config, log zerolog.Logger) user.IdentityProvider {
	return identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityServiceToken, log)
}

// ProvideAuditRecorder provides the admin action trail recorder.
func ProvideAuditRecorder(db *gorm.DB, log zerolog.Logger) *audit.Recorder {
	return audit.NewRecorder(db, log)
}

// ProvideHub provides the in-process event hub for live subscriptions.
func ProvideHub(log zerolog.Logger) *hub.Hub {
	return hub.New(log)
}

// ProvideEventPublisher exposes the hub as the domain event publisher.
func ProvideEventPublisher(h *hub.Hub) conversation.EventPublisher {
	return h
}

// ProvideMailer provides the mail webhook notifier.
func ProvideMailer(cfg *config.Config, log zerolog.Logger) *mailer.Mailer {
	return mailer.New(mailer.Config{
		WebhookURL: cfg.MailerWebhookURL,
		Secret:     cfg.MailerSecret,
		Timeout:    cfg.MailerTimeout,
	}, log)
}

// ProvideConversationNotifier exposes the mailer as the conversation notifier.
func ProvideConversationNotifier(m *mailer.Mailer) conversation.Notifier {
	return m
}

// ProvideShipmentNotifier exposes the mailer as the shipment notifier.
func ProvideShipmentNotifier(m *mailer.Mailer) shipment.Notifier {
	return m
}

// ProvideJanitor provides the scheduled cleanup service.
func ProvideJanitor(
	cfg *config.Config,
	conversations conversation.Repository,
	shipments shipment.Repository,
	log zerolog.Logger,
) *janitor.Janitor {
	return janitor.New(janitor.Config{
		Enabled:                cfg.JanitorEnabled,
		IntervalMinutes:        cfg.JanitorIntervalMinutes,
		PackageIntervalMinutes: cfg.JanitorPackageIntervalMinutes,
		ConversationMaxAge:     cfg.ConversationMaxAge,
		CanceledPackageMaxAge:  cfg.CanceledPackageMaxAge,
		SweepTimeout:           cfg.JanitorSweepTimeout,
		DeleteConcurrency:      cfg.JanitorDeleteConcurrent,
	}, conversations, shipments, log)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB           *gorm.DB
	JWTValidator *auth.JWTValidator
	Logger       zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	jwtValidator *auth.JWTValidator,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:           db,
		JWTValidator: jwtValidator,
		Logger:       logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProviderSet,

	// Logger
	logger.GetLogger,

	// Auth
	ProvideJWTValidator,

	// Identity provisioning
	ProvideIdentityClient,

	// Admin audit trail
	ProvideAuditRecorder,

	// Live events
	ProvideHub,
	ProvideEventPublisher,

	// Mail webhook
	ProvideMailer,
	ProvideConversationNotifier,
	ProvideShipmentNotifier,

	// Scheduled cleanup
	ProvideJanitor,

	// Infrastructure struct
	NewInfrastructure,
)
