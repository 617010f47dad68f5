package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/neutron/cmd/bot/config"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
)

func main() {
	a, err := InitializeApp(config.Args(os.Args[1:]))
	if err != nil {
		log.Fatalln(err)
	}
	a.Info("Starting application")
	if err := a.Run(context.Background()); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}
}
