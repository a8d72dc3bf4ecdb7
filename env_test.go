// File: roots/wp-config/env_test.go
package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/roots/wp-config"
)

func writeEnvFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestEnvLoaderResolve(t *testing.T) {
	t.Run("LocalOverridesBase", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{
			".env":       "A=1\n",
			".env.local": "A=2\nB=3\n",
		})

		loader := config.NewEnvLoader(config.DefaultEnvOptions(dir), config.NewMapEnvironment(nil))
		resolved, err := loader.Resolve()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "2", "B": "3"}, resolved)
		assert.Equal(t, []string{
			filepath.Join(dir, ".env"),
			filepath.Join(dir, ".env.local"),
		}, loader.Files())
	})

	t.Run("BaseOnly", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{".env": "A=1\n"})

		loader := config.NewEnvLoader(config.DefaultEnvOptions(dir), nil)
		assert.Equal(t, []string{filepath.Join(dir, ".env")}, loader.Files())

		resolved, err := loader.Resolve()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "1"}, resolved)
	})

	t.Run("FileSyntax", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{".env": `# comment
export DB_NAME=wordpress
DB_PASSWORD="s3cr3t value" # trailing comment
WP_HOME='https://example.com'
EMPTY=
`})

		resolved, err := config.NewEnvLoader(config.DefaultEnvOptions(dir), nil).Resolve()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"DB_NAME":     "wordpress",
			"DB_PASSWORD": "s3cr3t value",
			"WP_HOME":     "https://example.com",
			"EMPTY":       "",
		}, resolved)
	})

	t.Run("MissingBasePermissive", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{".env.local": "B=3\n"})

		resolved, err := config.NewEnvLoader(config.DefaultEnvOptions(dir), nil).Resolve()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"B": "3"}, resolved)
	})

	t.Run("MissingEverything", func(t *testing.T) {
		resolved, err := config.NewEnvLoader(config.DefaultEnvOptions(t.TempDir()), nil).Resolve()
		require.NoError(t, err)
		assert.Empty(t, resolved)
	})

	t.Run("MissingBaseRequired", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{".env.local": "B=3\n"})
		opts := config.DefaultEnvOptions(dir)
		opts.RequireBase = true

		_, err := config.NewEnvLoader(opts, nil).Resolve()
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrEnvironmentLoad)
		assert.ErrorIs(t, err, config.ErrEnvFileNotFound)
		assert.NotErrorIs(t, err, config.ErrConstantAlreadyDefined)

		var loadErr *config.EnvironmentLoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, filepath.Join(dir, ".env"), loadErr.Path)
	})

	t.Run("MalformedLine", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{
			".env":       "A=1\n",
			".env.local": "NOT-VALID=1\n",
		})

		_, err := config.NewEnvLoader(config.DefaultEnvOptions(dir), nil).Resolve()
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrEnvironmentLoad)

		var loadErr *config.EnvironmentLoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, filepath.Join(dir, ".env.local"), loadErr.Path)
	})

	t.Run("SkipLocal", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{
			".env":       "A=1\n",
			".env.local": "A=2\n",
		})
		opts := config.DefaultEnvOptions(dir)
		opts.SkipLocal = true

		resolved, err := config.NewEnvLoader(opts, nil).Resolve()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "1"}, resolved)
	})

	t.Run("CustomFileNames", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{
			"app.env":     "A=1\n",
			"app.env.dev": "A=dev\n",
		})
		opts := config.EnvOptions{Dir: dir, BaseFile: "app.env", LocalFile: "app.env.dev"}

		resolved, err := config.NewEnvLoader(opts, nil).Resolve()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "dev"}, resolved)
	})
}

func TestEnvLoaderLoad(t *testing.T) {
	t.Run("ExistingVariablesKept", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{".env": "A=file\nB=file\n"})
		env := config.NewMapEnvironment(map[string]string{"A": "process"})

		written, err := config.NewEnvLoader(config.DefaultEnvOptions(dir), env).Load()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"B": "file"}, written)

		a, _ := env.LookupEnv("A")
		assert.Equal(t, "process", a)
		b, _ := env.LookupEnv("B")
		assert.Equal(t, "file", b)
	})

	t.Run("Overwrite", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{".env": "A=file\n"})
		env := config.NewMapEnvironment(map[string]string{"A": "process"})
		opts := config.DefaultEnvOptions(dir)
		opts.Overwrite = true

		written, err := config.NewEnvLoader(opts, env).Load()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "file"}, written)

		a, _ := env.LookupEnv("A")
		assert.Equal(t, "file", a)
	})

	t.Run("ErrorLeavesEnvironmentUntouched", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{
			".env":       "A=1\n",
			".env.local": "BROKEN-KEY=1\n",
		})
		env := config.NewMapEnvironment(nil)

		_, err := config.NewEnvLoader(config.DefaultEnvOptions(dir), env).Load()
		require.Error(t, err)
		_, exists := env.LookupEnv("A")
		assert.False(t, exists)
	})

	t.Run("OSEnvironment", func(t *testing.T) {
		dir := writeEnvFiles(t, map[string]string{".env": "WPCONFIG_TEST_OS_VAR=from-file\n"})
		os.Unsetenv("WPCONFIG_TEST_OS_VAR")
		defer os.Unsetenv("WPCONFIG_TEST_OS_VAR")

		_, err := config.NewEnvLoader(config.DefaultEnvOptions(dir), config.OSEnvironment()).Load()
		require.NoError(t, err)
		assert.Equal(t, "from-file", os.Getenv("WPCONFIG_TEST_OS_VAR"))
	})
}

func TestRegistryEnvironment(t *testing.T) {
	dir := writeEnvFiles(t, map[string]string{
		".env":       "WP_ENV=production\nWP_HOME=https://example.com\n",
		".env.local": "WP_ENV=development\n",
	})
	env := config.NewMapEnvironment(nil)
	ns := config.NewMemoryNamespace()

	r, err := config.Bootstrap(config.Options{
		RootDir:     dir,
		Namespace:   ns,
		Environment: env,
	})
	require.NoError(t, err)

	t.Run("Environ", func(t *testing.T) {
		assert.Equal(t, "development", r.Environ("WP_ENV", "production"))
		assert.Equal(t, "fallback", r.Environ("MISSING", "fallback"))
	})

	t.Run("SetFromEnv", func(t *testing.T) {
		staged, err := r.SetFromEnv("WP_HOME")
		require.NoError(t, err)
		assert.True(t, staged)

		val, err := r.Get("WP_HOME")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", val)

		staged, err = r.SetFromEnv("MISSING")
		require.NoError(t, err)
		assert.False(t, staged)
		assert.False(t, r.Has("MISSING"))
	})

	t.Run("SetFromEnvCommitted", func(t *testing.T) {
		require.NoError(t, ns.Define("WP_ENV", "production"))
		staged, err := r.SetFromEnv("WP_ENV")
		assert.ErrorIs(t, err, config.ErrConstantAlreadyDefined)
		assert.False(t, staged)
	})

	t.Run("BootstrapRequiredBaseMissing", func(t *testing.T) {
		opts := config.Options{
			RootDir:     t.TempDir(),
			Namespace:   config.NewMemoryNamespace(),
			Environment: config.NewMapEnvironment(nil),
		}
		opts.Env.RequireBase = true

		_, err := config.Bootstrap(opts)
		assert.ErrorIs(t, err, config.ErrEnvFileNotFound)
	})
}
