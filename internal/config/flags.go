package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"time"
)

var errThreadsOutOfRange = errors.New("kdf-threads must fit in 1..255")

// ParseFlags parses the configuration flags found in args (without the
// program name).
//
// Flags:
//
//	-d storage path (database or document file)
//	-driver storage driver: sqlite, bolt, file or memory
//	-open-timeout store open timeout (e.g. "1s")
//	-c/-config json file path with configs
//	-credential-salt verification digest salt
//	-kdf-time argon2id time cost for note keys
//	-kdf-memory argon2id memory cost in KiB for note keys
//	-kdf-threads argon2id parallelism for note keys
//	-log-level minimal log level
//	-log-file log file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	var storagePath string
	var driver string
	var openTimeout time.Duration
	var jsonConfigPath string
	var credentialSalt string
	var kdfTime uint
	var kdfMemory uint
	var kdfThreads uint
	var logLevel string
	var logFile string

	fs := flag.NewFlagSet("notepad", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&storagePath, "d", "", "Storage path")
	fs.StringVar(&driver, "driver", "", "Storage driver (sqlite, bolt, file, memory)")
	fs.DurationVar(&openTimeout, "open-timeout", 0, "Store open timeout (e.g., 1s)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&credentialSalt, "credential-salt", "", "Verification digest salt")
	fs.UintVar(&kdfTime, "kdf-time", 0, "Argon2id time cost")
	fs.UintVar(&kdfMemory, "kdf-memory", 0, "Argon2id memory cost in KiB")
	fs.UintVar(&kdfThreads, "kdf-threads", 0, "Argon2id parallelism")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if kdfThreads > math.MaxUint8 {
		return nil, errThreadsOutOfRange
	}
	if kdfTime > math.MaxUint32 || kdfMemory > math.MaxUint32 {
		return nil, fmt.Errorf("kdf cost overflows uint32")
	}

	return &StructuredConfig{
		App: App{
			CredentialSalt: credentialSalt,
			KDFTime:        uint32(kdfTime),
			KDFMemoryKiB:   uint32(kdfMemory),
			KDFThreads:     uint8(kdfThreads),
		},
		Storage: Storage{
			Driver:      driver,
			Path:        storagePath,
			OpenTimeout: openTimeout,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
