// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage drivers understood by the store factory.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging values from environment variables, command-line flags, an
// optional JSON file and the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds cryptographic settings of the credential vault.
	App App `envPrefix:"APP_"`

	// Storage selects and locates the persistent key-value store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Log controls the log level and the log file location.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the parameters of the crypto provider.
type App struct {
	// CredentialSalt domain-separates the password verification digest.
	// Changing it makes every stored credential unverifiable.
	// Env: APP_CREDENTIAL_SALT
	CredentialSalt string `env:"CREDENTIAL_SALT"`

	// KDFTime is the Argon2id time cost used to derive note keys.
	// Env: APP_KDF_TIME
	KDFTime uint32 `env:"KDF_TIME"`

	// KDFMemoryKiB is the Argon2id memory cost in KiB used to derive note keys.
	// Env: APP_KDF_MEMORY_KIB
	KDFMemoryKiB uint32 `env:"KDF_MEMORY_KIB"`

	// KDFThreads is the Argon2id parallelism used to derive note keys.
	// Env: APP_KDF_THREADS
	KDFThreads uint8 `env:"KDF_THREADS"`
}

// Storage holds the persistent store settings.
type Storage struct {
	// Driver is one of "sqlite", "bolt", "file" or "memory".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// Path is the database or document file location. Ignored by "memory".
	// Env: STORAGE_PATH
	Path string `env:"PATH"`

	// OpenTimeout bounds how long opening the store may wait on a lock or ping.
	// Env: STORAGE_OPEN_TIMEOUT
	OpenTimeout time.Duration `env:"OPEN_TIMEOUT"`
}

// Log holds logging settings.
type Log struct {
	// Level is the minimal emitted level ("debug", "info", "warn", "error").
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is the log file path, relative paths resolve next to the binary.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// defaultConfig returns the values used for every field no other source set.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			CredentialSalt: "go-secure-notepad/credential/v1",
			KDFTime:        1,
			KDFMemoryKiB:   64 * 1024, // 64 MiB
			KDFThreads:     4,
		},
		Storage: Storage{
			Driver:      DriverSQLite,
			Path:        "notepad.db",
			OpenTimeout: time.Second,
		},
		Log: Log{
			Level: "info",
			File:  "notepad.log",
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. args are the command-line arguments without the program name.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
