package app

import (
	"net/http"

	"gorm.io/gorm"

	"rental-app-go/internal/config"
	"rental-app-go/internal/db"
	accessdomain "rental-app-go/internal/domain/access"
	activitydomain "rental-app-go/internal/domain/activity"
	billingdomain "rental-app-go/internal/domain/billing"
	bookingdomain "rental-app-go/internal/domain/booking"
	maintenancedomain "rental-app-go/internal/domain/maintenance"
	pkgdomain "rental-app-go/internal/domain/pkgdelivery"
	propertydomain "rental-app-go/internal/domain/property"
	tenantdomain "rental-app-go/internal/domain/tenant"
	"rental-app-go/internal/notify"
	accessrepo "rental-app-go/internal/repository/postgres/access"
	activityrepo "rental-app-go/internal/repository/postgres/activity"
	billingrepo "rental-app-go/internal/repository/postgres/billing"
	bookingrepo "rental-app-go/internal/repository/postgres/booking"
	maintenancerepo "rental-app-go/internal/repository/postgres/maintenance"
	pkgrepo "rental-app-go/internal/repository/postgres/pkgdelivery"
	propertyrepo "rental-app-go/internal/repository/postgres/property"
	tenantrepo "rental-app-go/internal/repository/postgres/tenant"
	"rental-app-go/internal/transport/httpserver"
	"rental-app-go/internal/transport/httpserver/handler"
	"rental-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	scopes := accessdomain.NewResolver(accessrepo.NewPostgres(dbConn))
	properties := propertydomain.NewService(propertyrepo.NewPostgres(dbConn))
	bookings := bookingdomain.NewService(bookingrepo.NewPostgres(dbConn))
	billing := billingdomain.NewService(billingrepo.NewPostgres(dbConn))
	maintenance := maintenancedomain.NewService(maintenancerepo.NewPostgres(dbConn))
	packages := pkgdomain.NewService(pkgrepo.NewPostgres(dbConn))
	tenants := tenantdomain.NewService(tenantrepo.NewPostgres(dbConn), bookings)
	recorder := activitydomain.NewRecorder(activityrepo.NewPostgres(dbConn), log)
	notifier := notify.New(cfg.Notify, log)

	handlers := handler.New(scopes, properties, bookings, billing, maintenance, packages, tenants, recorder, notifier, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, log)

	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
