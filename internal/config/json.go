package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		CredentialSalt string `json:"credential_salt"`
		KDFTime        uint32 `json:"kdf_time"`
		KDFMemoryKiB   uint32 `json:"kdf_memory_kib"`
		KDFThreads     uint8  `json:"kdf_threads"`
	} `json:"app,omitempty"`

	Storage struct {
		Driver      string   `json:"driver"`
		Path        string   `json:"path"`
		OpenTimeout Duration `json:"open_timeout"`
	} `json:"storage,omitempty"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			CredentialSalt: jsonCfg.App.CredentialSalt,
			KDFTime:        jsonCfg.App.KDFTime,
			KDFMemoryKiB:   jsonCfg.App.KDFMemoryKiB,
			KDFThreads:     jsonCfg.App.KDFThreads,
		},
		Storage: Storage{
			Driver:      jsonCfg.Storage.Driver,
			Path:        jsonCfg.Storage.Path,
			OpenTimeout: time.Duration(jsonCfg.Storage.OpenTimeout),
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
			File:  jsonCfg.Log.File,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
