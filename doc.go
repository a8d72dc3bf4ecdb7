// File: roots/wp-config/doc.go

// Package config stages configuration values during application bootstrap and
// commits them into a write-once constant namespace, refusing any redefinition
// of a committed constant with a different value.
//
// Features:
//   - Staging map with Set/Get/Remove and conditional blocks (When, WhenFunc)
//   - Two-phase Apply: every staged key is validated before anything is written
//   - Injected ConstantNamespace, with a process-wide MemoryNamespace by default
//   - .env / .env.local resolution with last-writer-wins merging
//   - Staging from structs and TOML/YAML/JSON definition files
//   - Project root discovery from marker files
//   - Builder pattern for bootstrap assembly
//
// Quick Start:
//
//	reg, err := config.Bootstrap(config.Options{RootDir: "/srv/app"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reg.Set("WP_ENV", reg.Environ("WP_ENV", "production"))
//	reg.When(reg.Environ("WP_ENV", "") == "development", func(r *config.Registry) error {
//	    return r.Set("WP_DEBUG", true)
//	})
//
//	if err := reg.Apply(); err != nil {
//	    log.Fatal(err) // errors.Is(err, config.ErrConstantAlreadyDefined)
//	}
//
//	debug, _ := config.Constant("WP_DEBUG")
//
// Environment Files (lowest to highest precedence):
//  1. .env        (always read when present; optionally required)
//  2. .env.local  (read when it exists)
//
// Variables already present in the process environment are never overwritten
// unless EnvOptions.Overwrite is set.
//
// Conflicts:
// A constant can be committed once per process. Set fails immediately for a
// committed key. Apply fails without writing anything if any staged key is
// committed with a different value, and silently skips keys committed with an
// equal value, so Apply can be repeated for incremental bootstrap phases.
package config
