// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks the values that were explicitly set on the merged
// [StructuredConfig]. Completeness is checked later by [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.Driver != "" && !isKnownDriver(cfg.Storage.Driver) {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLogConfigs, err)
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if !isKnownDriver(cfg.Storage.Driver) {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Driver != DriverMemory && cfg.Storage.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.CredentialSalt == "" {
		return ErrInvalidAppConfigs
	}

	// argon2 needs at least 8 KiB of memory per lane.
	if cfg.App.KDFTime == 0 || cfg.App.KDFTime > MaxKDFTime || cfg.App.KDFThreads == 0 ||
		cfg.App.KDFMemoryKiB < 8*uint32(cfg.App.KDFThreads) || cfg.App.KDFMemoryKiB > MaxKDFMemoryKiB {
		return ErrInvalidAppConfigs
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return ErrInvalidLogConfigs
	}

	return nil
}

// Upper bounds of the note key costs. Note blobs carrying larger costs are
// rejected on decryption.
const (
	MaxKDFTime      = 64
	MaxKDFMemoryKiB = 4 * 1024 * 1024
)

func isKnownDriver(driver string) bool {
	switch driver {
	case DriverSQLite, DriverBolt, DriverFile, DriverMemory:
		return true
	default:
		return false
	}
}
