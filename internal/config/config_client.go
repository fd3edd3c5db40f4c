package config

import (
	"fmt"
	"time"
)

// ClientApp holds the crypto provider parameters.
type ClientApp struct {
	// CredentialSalt domain-separates the verification digest.
	CredentialSalt string
	// KDFTime is the Argon2id time cost for note keys.
	KDFTime uint32
	// KDFMemoryKiB is the Argon2id memory cost for note keys.
	KDFMemoryKiB uint32
	// KDFThreads is the Argon2id parallelism for note keys.
	KDFThreads uint8
}

// ClientStorage holds the persistent store settings.
type ClientStorage struct {
	// Driver selects the store backend.
	Driver string
	// Path locates the database or document file.
	Path string
	// OpenTimeout bounds lock waits and pings while opening the store.
	OpenTimeout time.Duration
}

// ClientLog holds logging settings.
type ClientLog struct {
	Level string
	File  string
}

// ClientConfig is the validated runtime configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains the crypto provider parameters.
	App ClientApp
	// Storage contains the persistent store settings.
	Storage ClientStorage
	// Log contains logging settings.
	Log ClientLog
}

// GetClientConfig builds and validates the runtime config view from the
// merged structured configuration. args are the command-line arguments
// without the program name.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			CredentialSalt: cfg.App.CredentialSalt,
			KDFTime:        cfg.App.KDFTime,
			KDFMemoryKiB:   cfg.App.KDFMemoryKiB,
			KDFThreads:     cfg.App.KDFThreads,
		},
		Storage: ClientStorage{
			Driver:      cfg.Storage.Driver,
			Path:        cfg.Storage.Path,
			OpenTimeout: cfg.Storage.OpenTimeout,
		},
		Log: ClientLog{
			Level: cfg.Log.Level,
			File:  cfg.Log.File,
		},
	}

	return clientCfg, clientCfg.validate()
}
