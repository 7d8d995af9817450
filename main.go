package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Shadykom/ealaani/mailer"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	userCookieName           = "ealaani_user_session"
	userSessionDuration      = 180 * 24 * time.Hour
	operatorCookieName       = "ealaani_operator_session"
	operatorSessionDuration  = 8 * time.Hour
	defaultCatalogMaxAge     = 5 * time.Minute
	devCORSOriginLocalhost   = "http://localhost:5173"
	devCORSOriginLoopback    = "http://127.0.0.1:5173"
	trustedProxyLoopbackIPv4 = "127.0.0.1"
	trustedProxyLoopbackIPv6 = "::1"
)

var operatorRoles = []string{"admin", "support"}

type Config struct {
	Addr                      string
	Env                       string
	DatabaseURL               string
	DataRoot                  string
	PublicBaseURL             string
	AppSigningSecret          string
	EnquiryEmailTo            string
	BootstrapOperatorEmail    string
	BootstrapOperatorPassword string
	CatalogMaxAge             time.Duration
	ResendAPIKey              string
	MailerFromAddresses       map[string]string
}

type App struct {
	cfg *Config
	db  *sql.DB
	log *slog.Logger

	mailer  *mailer.Mailer
	catalog *Catalog

	viewStateMu sync.Mutex
	viewStates  map[string]*ViewStateController

	// test hooks for handlers that touch the database
	authenticateOperator func(ctx context.Context, email, password string) (*Operator, error)
	insertEnquiry        func(ctx context.Context, e Enquiry) (int, error)
	countEnquiries       func(ctx context.Context) (int, error)
	listEnquiries        func(ctx context.Context) ([]Enquiry, error)
}

type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

func main() {
	if err := loadDotEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		panic(err)
	}

	var mailProvider mailer.Provider
	if cfg.ResendAPIKey != "" {
		mailProvider = mailer.NewResendProvider(cfg.ResendAPIKey)
		logger.Info("mailer initialized", "provider", "resend")
	} else {
		mailProvider = mailer.NewLogProvider(logger)
		logger.Info("mailer initialized", "provider", "log")
	}
	mailClient := mailer.New(mailProvider, cfg.MailerFromAddresses[mailProvider.Name()])

	app := &App{
		cfg:        cfg,
		db:         db,
		log:        logger,
		mailer:     mailClient,
		viewStates: make(map[string]*ViewStateController),
	}
	app.catalog = NewCatalog(BillboardSourceFunc(app.storeListBillboardRows), fallbackBillboards, cfg.CatalogMaxAge, logger)

	app.authenticateOperator = app.storeAuthenticateOperator
	app.insertEnquiry = app.storeInsertEnquiry
	app.countEnquiries = app.storeCountEnquiries
	app.listEnquiries = app.storeListEnquiries

	logger.Info("runtime configuration", "env", cfg.Env, "addr", cfg.Addr, "catalog_max_age", cfg.CatalogMaxAge.String())

	if err := app.runMigrations(ctx); err != nil {
		panic(err)
	}

	if len(os.Args) > 1 && os.Args[1] == "seed-billboards" {
		seeded := 0
		for _, record := range fallbackBillboards {
			if err := app.storeUpsertBillboard(ctx, record); err != nil {
				logger.Error("failed to seed billboard", "id", record.ID, "err", err)
				continue
			}
			seeded++
		}
		logger.Info("seed-billboards completed", "count", seeded)
		return
	}

	if len(os.Args) > 1 && os.Args[1] == "run-export" {
		if err := app.bootstrapOperator(ctx); err != nil {
			panic(err)
		}
		batch, err := app.generateExportBatch(ctx, OperatorSession{Email: "scheduler", Role: "admin"})
		if err != nil {
			panic(err)
		}
		logger.Info("scheduled export generated", "export_id", batch.ID, "rows", batch.RowCount)
		return
	}

	if err := app.bootstrapOperator(ctx); err != nil {
		panic(err)
	}

	if err := InitContentCache(ctx, app.db); err != nil {
		app.log.Error("failed to initialize content cache", "err", err)
	}

	if err := os.MkdirAll(filepath.Join(cfg.DataRoot, "exports"), 0o755); err != nil {
		panic(err)
	}

	// Warm the catalog so the first request does not pay the fetch; a
	// failure here is the same banner the handlers would show.
	<-app.catalog.Refresh(ctx)

	r := gin.New()
	if err := r.SetTrustedProxies([]string{trustedProxyLoopbackIPv4, trustedProxyLoopbackIPv6}); err != nil {
		panic(err)
	}
	r.Use(gin.Recovery())
	r.Use(app.loggingMiddleware())
	r.Use(app.corsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/billboards", app.billboardsHandler)
		api.GET("/billboards/:id", app.billboardDetailsHandler)
		api.POST("/billboards/:id/enquiries", app.createEnquiryHandler)
		api.GET("/map", app.mapHandler)
		api.GET("/content", app.contentHandler)

		auth := api.Group("/auth")
		{
			auth.POST("/login", app.userLoginHandler)
			auth.POST("/signup", app.userSignupHandler)
			auth.POST("/logout", app.userLogoutHandler)
			auth.GET("/session", app.userSessionHandler)
		}

		user := api.Group("")
		user.Use(app.requireUserSession())
		{
			user.GET("/dashboard", app.dashboardHandler)
			user.GET("/view-state", app.viewStateHandler)
			user.POST("/view-state", app.updateViewStateHandler)
		}

		opAuth := api.Group("/operator/auth")
		{
			opAuth.POST("/login", app.operatorLoginHandler)
			opAuth.POST("/logout", app.operatorLogoutHandler)
			opAuth.GET("/session", app.operatorSessionHandler)
		}

		op := api.Group("/operator")
		op.Use(app.requireOperatorSession())
		{
			op.GET("/enquiries", app.operatorEnquiriesHandler)
			op.GET("/exports", app.operatorExportsHandler)
			op.POST("/exports/generate", app.requireRole("admin"), app.operatorGenerateExportHandler)
			op.GET("/exports/:id/download", app.operatorExportDownloadHandler)
			op.GET("/operators", app.requireRole("admin"), app.operatorListOperatorsHandler)
			op.POST("/operators", app.requireRole("admin"), app.operatorCreateOperatorHandler)
			op.POST("/operators/:id/toggle", app.requireRole("admin"), app.operatorToggleOperatorHandler)
			op.GET("/content", app.operatorContentHandler)
			op.PUT("/content/:key", app.requireRole("admin"), app.operatorUpdateContentHandler)
		}
	}

	app.log.Info("starting gin API", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		panic(err)
	}
}

func loadConfig() (*Config, error) {
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		host := valueFromEnvKeys("PGHOST", "POSTGRES_HOST")
		if host == "" {
			host = "127.0.0.1"
		}
		port := valueFromEnvKeys("PGPORT", "POSTGRES_PORT")
		if port == "" {
			port = "5432"
		}
		dbname := valueFromEnvKeys("PGDATABASE", "POSTGRES_DB")
		user := valueFromEnvKeys("PGUSER", "POSTGRES_USER")
		password := valueFromEnvKeys("PGPASSWORD", "POSTGRES_PASSWORD")
		sslmode := valueFromEnvKeys("PGSSLMODE", "POSTGRES_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		if dbname != "" && user != "" {
			databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, dbname, sslmode)
		}
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or PG*/POSTGRES_* variables must be configured")
	}

	secret := strings.TrimSpace(os.Getenv("APP_SIGNING_SECRET"))
	if len(secret) < 16 {
		return nil, fmt.Errorf("APP_SIGNING_SECRET must be at least 16 characters")
	}

	publicBase := strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL"))
	if publicBase == "" {
		publicBase = "https://ealaani.sa"
	}
	publicBase = strings.TrimRight(publicBase, "/")

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	cfg := &Config{
		Addr:                      valueOrDefault("GIN_ADDR", ":8080"),
		Env:                       env,
		DatabaseURL:               databaseURL,
		DataRoot:                  valueOrDefault("DATA_ROOT", "/var/lib/ealaani"),
		PublicBaseURL:             publicBase,
		AppSigningSecret:          secret,
		EnquiryEmailTo:            strings.TrimSpace(os.Getenv("ENQUIRY_EMAIL_TO")),
		BootstrapOperatorEmail:    strings.TrimSpace(os.Getenv("BOOTSTRAP_OPERATOR_EMAIL")),
		BootstrapOperatorPassword: strings.TrimSpace(os.Getenv("BOOTSTRAP_OPERATOR_PASSWORD")),
		CatalogMaxAge:             defaultCatalogMaxAge,
		ResendAPIKey:              strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		MailerFromAddresses: map[string]string{
			"resend": valueOrDefault("MAILER_FROM_ADDRESS_RESEND", "noreply@mail.ealaani.sa"),
			"log":    valueOrDefault("MAILER_FROM_ADDRESS_LOG", "noreply@ealaani.local"),
		},
	}

	if rawMaxAge := strings.TrimSpace(os.Getenv("CATALOG_MAX_AGE")); rawMaxAge != "" {
		parsed, err := time.ParseDuration(rawMaxAge)
		if err != nil {
			return nil, fmt.Errorf("CATALOG_MAX_AGE must be a valid duration")
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("CATALOG_MAX_AGE must be positive")
		}
		cfg.CatalogMaxAge = parsed
	}

	return cfg, nil
}

func loadDotEnvFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.Trim(strings.TrimSpace(line[idx+1:]), "\"")
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func valueFromEnvKeys(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

func (a *App) runMigrations(ctx context.Context) error {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return err
	}

	if _, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, file := range files {
		var exists bool
		if err := a.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`, file).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		content, err := migrationFiles.ReadFile(filepath.Join("migrations", file))
		if err != nil {
			return err
		}

		tx, err := a.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, file); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		a.log.Info("applied migration", "file", file)
	}

	return nil
}

func (a *App) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}

func (a *App) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if a.isAllowedCORSOrigin(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *App) isAllowedCORSOrigin(origin string) bool {
	if origin == "" || a.cfg == nil {
		return false
	}
	if a.cfg.PublicBaseURL != "" && origin == a.cfg.PublicBaseURL {
		return true
	}
	if !strings.EqualFold(a.cfg.Env, "development") {
		return false
	}
	return origin == devCORSOriginLocalhost || origin == devCORSOriginLoopback
}

func writeAPIError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Code, "message": apiErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
}
