package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/openpassport/dppsrv/internal/common/logtrace"
	"github.com/openpassport/dppsrv/internal/passportsrv/config"
	"github.com/openpassport/dppsrv/internal/passportsrv/server"
)

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile *string
}

func main() {
	slog := log.With().Str("state", "init").Logger()
	opt := parseFlags()

	slog.Info().Str("config_file", *opt.configFile).Msg("loading config file")
	if err := config.LoadConfig(*opt.configFile); err != nil {
		slog.Error().Str("config_file", *opt.configFile).Err(err).Msg("unable to load config file")
		os.Exit(1)
	}
	if config.Config().ServerPort == "" {
		slog.Error().Msg("server port not defined")
		os.Exit(1)
	}

	s, err := server.CreateNewServer()
	if err != nil {
		slog.Error().Err(err).Msg("Unable to create server")
		os.Exit(1)
	}
	if seedFile := config.Config().SeedFile; seedFile != "" {
		ctx := log.Logger.WithContext(context.Background())
		if err := s.LoadSeedData(ctx, seedFile); err != nil {
			slog.Error().Str("seed_file", seedFile).Err(err).Msg("unable to load seed data")
			os.Exit(1)
		}
	}
	s.MountHandlers()

	slog.Info().Str("port", config.Config().ServerPort).Msg("starting server")
	if err := http.ListenAndServe(":"+config.Config().ServerPort, s.Router); err != nil {
		slog.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", "", "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
