package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Match resumes against job descriptions",
	Long: "resume_matcher extracts text, contact details, education and skills from PDF and DOCX resumes, " +
		"scores them against a job description with TF-IDF cosine similarity and reports the skill gap.",
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  loadSettings,
	PersistentPostRunE: syncLogger,
}

var (
	cfgFile string

	// flagBindings maps config keys to the flags that override them.
	flagBindings = map[string]*pflag.Flag{}

	appConfig *config.Config
	appLogger = zap.NewNop()
)

func bindFlag(key string, flag *pflag.Flag) {
	flagBindings[key] = flag
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is resume_matcher.{yaml,json,toml} in the current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug logging")
	rootCmd.PersistentFlags().Bool("json-logs", false, "json format for logging")
	rootCmd.PersistentFlags().String("vocabulary", "", "skill vocabulary JSON file (default is the built-in list)")

	bindFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	bindFlag("log.json", rootCmd.PersistentFlags().Lookup("json-logs"))
	bindFlag("vocabulary_path", rootCmd.PersistentFlags().Lookup("vocabulary"))
}

func loadSettings(_ *cobra.Command, _ []string) error {
	v := viper.New()
	for key, flag := range flagBindings {
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	appConfig = cfg
	appLogger = log
	appLogger.Debug("configuration loaded",
		zap.String("config_file", v.ConfigFileUsed()),
		zap.String("vocabulary", cfg.VocabularyPath))
	return nil
}

func syncLogger(_ *cobra.Command, _ []string) error {
	// Sync fails on terminals; nothing useful can be done about it.
	_ = appLogger.Sync()
	return nil
}
