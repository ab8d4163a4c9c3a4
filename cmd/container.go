// cmd/container.go
//
// Composition root. Owns infrastructure (Redis, Postgres, email, PowerBI) and
// composes the module containers.
package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/asyncx"
	"github.com/Abraxas-365/supplierportal/pkg/config"
	"github.com/Abraxas-365/supplierportal/pkg/health"
	"github.com/Abraxas-365/supplierportal/pkg/iam/iamcontainer"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp/otpinfra"
	"github.com/Abraxas-365/supplierportal/pkg/logx"
	"github.com/Abraxas-365/supplierportal/pkg/metricx"
	"github.com/Abraxas-365/supplierportal/pkg/notifx"
	"github.com/Abraxas-365/supplierportal/pkg/notifx/notifxconsole"
	"github.com/Abraxas-365/supplierportal/pkg/notifx/notifxses"
	"github.com/Abraxas-365/supplierportal/pkg/report"
	"github.com/Abraxas-365/supplierportal/pkg/report/reportapi"
	"github.com/Abraxas-365/supplierportal/pkg/report/reportinfra"
	"github.com/Abraxas-365/supplierportal/pkg/supplier"
	"github.com/Abraxas-365/supplierportal/pkg/supplier/supplierapi"
	"github.com/Abraxas-365/supplierportal/pkg/supplier/supplierinfra"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	connectAttempts = 5
	connectDelay    = 500 * time.Millisecond
)

// Container holds shared infrastructure and composed module containers.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB      *sqlx.DB
	Redis   *redis.Client
	Metrics *metricx.Metrics
	Health  *health.Checker

	// Bounded contexts
	IAM              *iamcontainer.Container
	SupplierHandlers *supplierapi.SupplierHandlers
	ReportHandlers   *reportapi.ReportHandlers
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg, Metrics: metricx.New()}

	c.initInfrastructure()
	c.initModules()

	logx.Info("✅ Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")
	ctx := context.Background()
	var probes []health.Probe

	if c.Config.Passcode.Store == "redis" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Address(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		_, err := asyncx.Retry(ctx, connectAttempts, connectDelay, func(ctx context.Context) (string, error) {
			return c.Redis.Ping(ctx).Result()
		})
		if err != nil {
			logx.Fatalf("Failed to connect to Redis: %v (Redis is required for OTP_STORE=redis)", err)
		}
		probes = append(probes, health.Probe{Name: "redis", Check: func(ctx context.Context) error {
			return c.Redis.Ping(ctx).Err()
		}})
		logx.Info("  ✅ Redis connected")
	}

	if c.Config.Supplier.Source == "postgres" {
		db, err := asyncx.Retry(ctx, connectAttempts, connectDelay, func(ctx context.Context) (*sqlx.DB, error) {
			return sqlx.ConnectContext(ctx, "postgres", c.Config.Database.DSN())
		})
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
		db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
		c.DB = db
		probes = append(probes, health.Probe{Name: "postgres", Check: db.PingContext})
		logx.Info("  ✅ Database connected")

		if c.Config.Supplier.Migrate {
			if err := supplierinfra.Migrate(ctx, db.DB); err != nil {
				logx.Fatalf("Failed to run migrations: %v", err)
			}
			logx.Info("  ✅ Migrations applied")
		}
	}

	c.Health = health.NewChecker(2*time.Second, probes...)
	logx.Info("✅ Infrastructure initialized")
}

// ---------------------------------------------------------------------------
// Module composition
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	logx.Info("📦 Initializing modules...")

	var (
		directory otp.AccountDirectory
		repo      supplier.Repository
	)
	if c.DB != nil {
		pg := supplierinfra.NewPostgresRepository(c.DB)
		directory, repo = pg, pg
		logx.Info("  ✅ Supplier directory: postgres")
	} else {
		directory, repo = supplierinfra.NewMockDirectory(), supplierinfra.NewMockRepository()
		logx.Warn("  ⚠️  Using mock supplier directory: every email resolves to an account")
	}

	iam, err := iamcontainer.New(iamcontainer.Deps{
		Cfg:       c.Config,
		Redis:     redisClient(c.Redis),
		Directory: directory,
		Notifier:  c.newNotifier(),
		Metrics:   c.Metrics,
	})
	if err != nil {
		logx.Fatalf("Failed to initialize IAM: %v", err)
	}
	c.IAM = iam

	c.SupplierHandlers = supplierapi.NewSupplierHandlers(repo)
	c.ReportHandlers = reportapi.NewReportHandlers(c.newReportProvider())
}

func (c *Container) newNotifier() otp.NotificationService {
	var sender notifx.EmailSender
	switch c.Config.Notifx.Provider {
	case "ses":
		ses, err := notifxses.NewSESProviderFromEnv(context.Background(), c.Config.Notifx.AWSRegion, c.Config.Notifx.FromAddress)
		if err != nil {
			logx.Fatalf("Failed to initialize SES: %v", err)
		}
		sender = ses
		logx.Infof("  ✅ Email delivery: SES (region: %s)", c.Config.Notifx.AWSRegion)
	case "console":
		sender = notifxconsole.NewConsoleProvider()
		logx.Warn("  ⚠️  Email delivery: console (development only)")
	default:
		return nil
	}

	notifier, err := otpinfra.NewEmailNotifier(
		notifx.NewClient(sender, c.Config.Notifx.FromAddress),
		c.Config.Passcode.TTL,
	)
	if err != nil {
		logx.Fatalf("Failed to initialize passcode notifier: %v", err)
	}
	return notifier
}

func (c *Container) newReportProvider() report.Provider {
	cfg := c.Config.PowerBI
	if cfg.Provider != "powerbi" {
		logx.Warn("  ⚠️  Using mock PowerBI provider")
		return reportinfra.NewMockProvider(cfg.ReportID, cfg.EmbedBaseURL, cfg.TokenTTL)
	}

	p, err := reportinfra.NewPowerBIProviderFromConfig(cfg)
	if err != nil {
		logx.Fatalf("Failed to initialize PowerBI provider: %v", err)
	}
	logx.Info("  ✅ PowerBI provider configured")
	return p
}

// redisClient avoids handing a typed nil to the interface field
func redisClient(rdb *redis.Client) redis.UniversalClient {
	if rdb == nil {
		return nil
	}
	return rdb
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("  ✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
