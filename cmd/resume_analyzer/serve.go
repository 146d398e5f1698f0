package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/export"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/server"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/storage"
)

// artifactPurgeInterval is how often expired session documents are removed.
const artifactPurgeInterval = time.Hour

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Apply pending database migrations and start the HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides the addr setting)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Addr = fmt.Sprintf(":%d", servePort)
	}
	if err := cfg.RequireServer(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	applied, err := database.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if len(applied) > 0 {
		log.Info("applied migrations", zap.Ints("versions", applied))
	}

	vocab, err := loadVocabulary(cfg, log)
	if err != nil {
		return err
	}

	passwords, err := cfg.PasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}
	sessions, err := cfg.SessionConfig()
	if err != nil {
		return fmt.Errorf("failed to create session config: %w", err)
	}

	metricsManager := metrics.NewManager()
	analyzerOpts := []pipeline.Option{
		pipeline.WithMetrics(metricsManager),
		pipeline.WithLogger(log.Named("pipeline")),
	}
	if cfg.JobPostEnabled {
		analyzerOpts = append(analyzerOpts, pipeline.WithImporter(newImporter(cfg, log)))
	}
	analyzer := pipeline.NewAnalyzer(vocab, analyzerOpts...)

	srvCfg := server.Config{
		Addr:           cfg.Addr,
		Store:          database,
		Analyzer:       analyzer,
		Passwords:      passwords,
		Sessions:       sessions,
		Exporters:      export.DefaultRegistry(),
		Metrics:        metricsManager,
		Logger:         log.Named("server"),
		MaxUploadBytes: cfg.MaxUploadBytes(),
		ImportEnabled:  cfg.JobPostEnabled,
	}
	if cfg.RateLimitEnabled {
		srvCfg.RateLimiter = ratelimit.NewLimiter(ratelimit.NewConfig(
			true, cfg.RateLimitDefaultLimit, cfg.RateLimitDefaultWindow, cfg.RateLimitWhitelist))
	}
	if cfg.ArchiveEnabled() {
		archive, err := storage.NewS3Archive(ctx, storage.Options{
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}, log.Named("storage"))
		if err != nil {
			return fmt.Errorf("failed to create upload archive: %w", err)
		}
		srvCfg.Archive = archive
		log.Info("archiving uploads", zap.String("bucket", cfg.S3Bucket))
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	go purgeArtifacts(ctx, database, sessions.TTL, log)
	return srv.Start(ctx)
}

// purgeArtifacts removes session documents older than the session lifetime until ctx ends.
func purgeArtifacts(ctx context.Context, database *db.DB, ttl time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(artifactPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := database.PurgeArtifacts(ctx, now.Add(-ttl))
			if err != nil {
				log.Error("failed to purge session artifacts", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("purged session artifacts", zap.Int64("count", n))
			}
		}
	}
}
