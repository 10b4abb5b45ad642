package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lamassuiot/authping/backend/pkg/assemblers"
	"github.com/lamassuiot/authping/backend/pkg/config"
	cconfig "github.com/lamassuiot/authping/core/pkg/config"
	"github.com/lamassuiot/authping/core/pkg/helpers"
	"github.com/lamassuiot/authping/core/pkg/models"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var (
	version   string = "v0"    // api version
	sha1ver   string = "-"     // sha1 revision used to build the program
	buildTime string = "devTS" // when the executable was built
)

func main() {
	log.SetFormatter(helpers.LogFormatter)
	log.Infof("starting api: version=%s buildTime=%s sha1ver=%s", version, buildTime, sha1ver)

	defaults := config.AuthPingDefaults()
	conf, err := cconfig.LoadConfig[config.AuthPingConfig](&defaults)
	if err != nil {
		log.Fatalf("something went wrong while loading config. Exiting: %s", err)
	}

	globalLogLevel, err := log.ParseLevel(string(conf.Logs.Level))
	if err != nil {
		log.Warn("unknown log level. defaulting to 'info' log level")
		globalLogLevel = log.InfoLevel
	}
	log.SetLevel(globalLogLevel)

	log.Infof("global log level set to '%s'", globalLogLevel)

	confBytes, err := yaml.Marshal(conf)
	if err != nil {
		log.Fatalf("could not dump yaml config: %s", err)
	}

	log.Debugf("===================================================")
	log.Debugf("%s", confBytes)
	log.Debugf("===================================================")

	if err := cconfig.Validate(conf); err != nil {
		log.Fatalf("%s. Exiting", err)
	}

	server, err := assemblers.AssembleAuthPingServiceWithHTTPServer(*conf, models.APIServiceInfo{
		Version:   version,
		BuildSHA:  sha1ver,
		BuildTime: buildTime,
	})
	if err != nil {
		log.Fatalf("could not run AuthPing Server. Exiting: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("shutting down AuthPing Server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("could not shut down gracefully: %s", err)
	}
}
