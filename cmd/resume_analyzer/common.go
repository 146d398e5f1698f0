package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/jobpost"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/skills"
)

// loadConfig layers command-line flags over the file and environment configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugFlag
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

func loadVocabulary(cfg *config.Config, log *zap.Logger) (*skills.Vocabulary, error) {
	vocab, err := skills.Load(cfg.SkillsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill vocabulary: %w", err)
	}
	fields := []zap.Field{zap.String("file", cfg.SkillsFile), zap.Int("skills", vocab.Len())}
	for _, c := range skills.Categories {
		fields = append(fields, zap.Int(string(c), len(vocab.Category(c))))
	}
	log.Debug("skill vocabulary loaded", fields...)
	return vocab, nil
}

func newImporter(cfg *config.Config, log *zap.Logger) *jobpost.Importer {
	return jobpost.NewImporter(jobpost.Options{
		Timeout:    cfg.JobPostTimeout,
		UseBrowser: cfg.JobPostUseBrowser,
	}, log.Named("jobpost"))
}
