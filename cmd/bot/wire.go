//go:build wireinject
// +build wireinject

package main

import (
	"github.com/Jacobbrewer1/neutron/cmd/bot/config"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/google/wire"
	"github.com/gorilla/mux"
)

func InitializeApp(args config.Args) (*App, error) {
	wire.Build(
		wire.Value(logging.Name(config.AppName)),
		logging.NewConfig,
		logging.CommonLogger,
		mux.NewRouter,
		config.Load,
		NewApp,
	)
	return new(App), nil
}
