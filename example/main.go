// FILE: roots/wp-config/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	config "github.com/roots/wp-config"
)

// SiteConfig holds the defaults staged before environment overrides.
type SiteConfig struct {
	Env         string `const:"WP_ENV"`
	Debug       bool   `const:"WP_DEBUG"`
	ScriptDebug bool   `const:"SCRIPT_DEBUG"`
	HomeURL     string `const:"WP_HOME"`
	Internal    string `const:"-"`
}

func main() {
	logger, err := config.NewProductionLogger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// =========================================================================
	// PART 1: ENVIRONMENT FILES
	// Write a base .env and a .env.local override into a scratch directory.
	// =========================================================================
	rootDir, err := os.MkdirTemp("", "wpconfig-example-*")
	if err != nil {
		logger.Fatal("failed to create scratch directory", zap.Error(err))
	}
	defer os.RemoveAll(rootDir)

	writeFile(logger, filepath.Join(rootDir, ".env"), "WP_ENV=production\nWP_HOME=https://example.com\n")
	writeFile(logger, filepath.Join(rootDir, ".env.local"), "WP_ENV=development\n")

	env := config.NewMapEnvironment(nil)
	ns := config.NewMemoryNamespace()

	// =========================================================================
	// PART 2: BUILD AND STAGE
	// =========================================================================
	reg, err := config.NewBuilder().
		WithRootDir(rootDir).
		WithLogger(logger).
		WithNamespace(ns).
		WithEnvironment(env).
		WithBootstrapEnv().
		WithStruct(&SiteConfig{Env: "production", HomeURL: "http://localhost"}).
		WithValidator(func(r *config.Registry) error {
			return r.Validate("WP_ENV", "WP_HOME")
		}).
		Build()
	if err != nil {
		logger.Fatal("failed to build registry", zap.Error(err))
	}

	// Environment values replace the struct defaults before anything is committed.
	if _, err := reg.SetFromEnv("WP_ENV"); err != nil {
		logger.Fatal("failed to stage WP_ENV", zap.Error(err))
	}
	if _, err := reg.SetFromEnv("WP_HOME"); err != nil {
		logger.Fatal("failed to stage WP_HOME", zap.Error(err))
	}

	err = reg.When(reg.GetDefault("WP_ENV", "") == "development", func(r *config.Registry) error {
		if err := r.Set("WP_DEBUG", true); err != nil {
			return err
		}
		return r.Set("SCRIPT_DEBUG", true)
	})
	if err != nil {
		logger.Fatal("failed to stage development overrides", zap.Error(err))
	}

	// =========================================================================
	// PART 3: APPLY
	// =========================================================================
	if err := reg.Apply(); err != nil {
		logger.Fatal("failed to apply configuration", zap.Error(err))
	}
	fmt.Print(reg.Debug())

	var site SiteConfig
	if err := reg.Scan(&site); err != nil {
		logger.Fatal("failed to scan constants", zap.Error(err))
	}
	fmt.Printf("env=%s debug=%t home=%s\n", site.Env, site.Debug, site.HomeURL)

	// =========================================================================
	// PART 4: REDEFINITION IS REFUSED
	// =========================================================================
	err = reg.Set("WP_DEBUG", false)
	if errors.Is(err, config.ErrConstantAlreadyDefined) {
		fmt.Printf("refused: %v\n", err)
	}

	dumpPath := filepath.Join(rootDir, "constants.toml")
	if err := reg.Dump(dumpPath); err != nil {
		logger.Fatal("failed to dump constants", zap.Error(err))
	}
	data, _ := os.ReadFile(dumpPath)
	fmt.Printf("%s", data)
}

func writeFile(logger *zap.Logger, path, content string) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		logger.Fatal("failed to write file", zap.String("path", path), zap.Error(err))
	}
}
