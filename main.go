package main

import (
	"flag"
	"fmt"

	"os"

	"github.com/jonboulle/clockwork"
	"github.com/peer-network/peer-token/service/app"
	"github.com/peer-network/peer-token/service/common"
	"github.com/peer-network/peer-token/service/config"
	"github.com/peer-network/peer-token/service/http"
	"github.com/peer-network/peer-token/service/metrics"
	log "github.com/sirupsen/logrus"
)

const version = "0.1.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func init() {
	log.SetLevel(log.InfoLevel)
}

func main() {
	var (
		printVersion bool
		envFilePath  string
	)

	// If we should just print the version number and exit
	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")

	// Allow configuration of envfile path
	// If not set, ParseConfig will not try to load variables to environment from a file
	flag.StringVar(&envFilePath, "envfile", "", "envfile path")

	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	opts := &config.ConfigOptions{EnvFilePath: envFilePath}
	cfg, err := config.ParseConfig(opts)
	if err != nil {
		panic(err)
	}

	if err := runServer(cfg); err != nil {
		panic(err)
	}

	os.Exit(0)
}

func runServer(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config not provided")
	}

	logger := log.New()
	logger.SetLevel(cfg.Level())

	logger.Printf("Starting server (v%s)...\n", version)

	metrics.BuildInfo.WithLabelValues(version, sha1ver, buildTime).Set(1)

	// Database
	db, err := common.NewGormDB(cfg)
	if err != nil {
		return err
	}
	defer common.CloseGormDB(db)

	// Migrate app database
	if err := app.Migrate(db); err != nil {
		return err
	}

	// Application
	app, err := app.New(cfg, logger, app.NewGormStore(db), clockwork.NewRealClock(), !cfg.DisablePoller)
	if err != nil {
		return err
	}
	defer app.Close()

	// HTTP server
	server := http.NewServer(cfg, logger, app)

	server.ListenAndServe()

	return nil
}
