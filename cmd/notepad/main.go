package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-secure-notepad/internal/client"
	"github.com/MKhiriev/go-secure-notepad/internal/config"
	"github.com/MKhiriev/go-secure-notepad/internal/crypto"
	"github.com/MKhiriev/go-secure-notepad/internal/logger"
	"github.com/MKhiriev/go-secure-notepad/internal/store"
	"github.com/MKhiriev/go-secure-notepad/internal/tui"
	"github.com/MKhiriev/go-secure-notepad/internal/vault"
	"github.com/MKhiriev/go-secure-notepad/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewFileLogger("go-secure-notepad", cfg.Log.File).WithLevel(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	persistentStore, err := store.NewPersistentStore(ctx, cfg.Storage, log)
	if err != nil {
		stop()
		fatal(log, err, "open persistent store")
	}

	cryptoProvider := crypto.NewCryptoProvider(crypto.Params{
		CredentialSalt: cfg.App.CredentialSalt,
		Time:           cfg.App.KDFTime,
		MemoryKiB:      cfg.App.KDFMemoryKiB,
		Threads:        cfg.App.KDFThreads,
	})

	credentialVault := vault.NewCredentialVault(persistentStore, cryptoProvider, log)

	ui, err := tui.New(credentialVault, buildInfo, log)
	if err != nil {
		persistentStore.Close()
		stop()
		fatal(log, err, "error creating ui")
	}

	app, err := client.NewApp(ui, persistentStore, log)
	if err != nil {
		persistentStore.Close()
		stop()
		fatal(log, err, "init client app error")
	}

	if err = app.Run(ctx); err != nil {
		stop()
		fatal(log, err, "client run error")
	}
}

func fatal(log *logger.Logger, err error, msg string) {
	reportFailure(os.Stderr, log, err, msg)
	os.Exit(1)
}

// reportFailure writes err to the log and to w. The log goes to a file, so w
// is what the user sees.
func reportFailure(w io.Writer, log *logger.Logger, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	fmt.Fprintf(w, "%s: %v\n", msg, err)
}
