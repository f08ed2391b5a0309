// Package config holds the viper-backed application configuration.
package config

import (
	"log/slog"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// DBFile is the path to the catalog SQLite database
	DBFile string
	// Language is the two-letter code used to restrict catalog imports
	Language string
	// Subjects are the topic queries the importer pages through
	Subjects []string
	// SeedLimit is the default number of books fetched when seeding
	SeedLimit int
	// MarkdownOutputDir is where the export command writes notes
	MarkdownOutputDir string
)

// InitConfig sets defaults, binds environment variables and loads the
// optional config.yaml from the working directory.
func InitConfig() {
	viper.SetDefault("store.dbfile", "./libreria.db")
	viper.SetDefault("catalog.language", "es")
	viper.SetDefault("catalog.subjects", []string{"fiction", "history", "science"})
	viper.SetDefault("seed.limit", 60)
	viper.SetDefault("markdown.outputdir", "./markdown/")

	viper.AutomaticEnv()
	if err := viper.BindEnv("googlebooks.apikey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Failed to read config file", "error", err)
		}
	}

	Reload()
}

// Reload refreshes the globals from viper. Call after viper.Set overrides.
func Reload() {
	DBFile = viper.GetString("store.dbfile")
	Language = viper.GetString("catalog.language")
	Subjects = viper.GetStringSlice("catalog.subjects")
	SeedLimit = viper.GetInt("seed.limit")
	MarkdownOutputDir = viper.GetString("markdown.outputdir")
}

// APIKey returns the Google Books API key, if configured.
func APIKey() string {
	return viper.GetString("googlebooks.apikey")
}
