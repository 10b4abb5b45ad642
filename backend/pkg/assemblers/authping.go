package assemblers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lamassuiot/authping/backend/pkg/config"
	"github.com/lamassuiot/authping/backend/pkg/jobs"
	"github.com/lamassuiot/authping/backend/pkg/middlewares/otel"
	"github.com/lamassuiot/authping/backend/pkg/routes"
	beService "github.com/lamassuiot/authping/backend/pkg/services"
	"github.com/lamassuiot/authping/backend/pkg/storage/builder"
	"github.com/lamassuiot/authping/core/pkg/engines/storage"
	"github.com/lamassuiot/authping/core/pkg/helpers"
	"github.com/lamassuiot/authping/core/pkg/models"
	"github.com/lamassuiot/authping/core/pkg/services"
)

const serviceName = "AuthPing"

// AuthPingService bundles the authentication service with the resources it owns.
type AuthPingService struct {
	Service   services.AuthnService
	storage   storage.StorageEngine
	scheduler *jobs.JobScheduler
}

func (s *AuthPingService) Close() error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}

	return s.storage.Close()
}

type AuthPingServer struct {
	*AuthPingService
	Port   int
	server *http.Server
}

// Shutdown stops accepting requests, waits for in-flight ones and releases the service resources.
func (s *AuthPingServer) Shutdown(ctx context.Context) error {
	return errors.Join(s.server.Shutdown(ctx), s.AuthPingService.Close())
}

func AssembleAuthPingServiceWithHTTPServer(conf config.AuthPingConfig, serviceInfo models.APIServiceInfo) (*AuthPingServer, error) {
	svc, err := AssembleAuthPingService(conf)
	if err != nil {
		return nil, fmt.Errorf("could not assemble AuthPing Service. Exiting: %s", err)
	}

	lHttp := helpers.SetupLogger(conf.Server.LogLevel, serviceName, "HTTP Server")

	httpEngine := routes.NewGinEngine(lHttp)
	httpGrp := httpEngine.Group("/api")
	routes.NewAuthPingRoutes(lHttp, httpGrp, svc.Service)

	server, port, err := routes.RunHttpRouter(lHttp, httpEngine, conf.Server, serviceInfo)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("could not run AuthPing http server: %s", err)
	}

	return &AuthPingServer{
		AuthPingService: svc,
		Port:            port,
		server:          server,
	}, nil
}

func AssembleAuthPingService(conf config.AuthPingConfig) (*AuthPingService, error) {
	lSvc := helpers.SetupLogger(conf.Logs.Level, serviceName, "Service")
	lStorage := helpers.SetupLogger(conf.Storage.LogLevel, serviceName, "Storage")

	accessLifetime, err := parseLifetime(conf.Authentication.AccessTokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token lifetime: %s", err)
	}

	refreshLifetime, err := parseLifetime(conf.Authentication.RefreshTokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token lifetime: %s", err)
	}

	engine, err := builder.BuildStorageEngine(lStorage, conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("could not create storage engine: %s", err)
	}

	userRepo, err := engine.GetUserStorage()
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("could not get user storage: %s", err)
	}

	blacklistRepo, err := engine.GetTokenBlacklistStorage()
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("could not get token blacklist storage: %s", err)
	}

	svc, err := beService.NewAuthnService(beService.AuthnServiceBuilder{
		Logger:                 lSvc,
		UserStorage:            userRepo,
		BlacklistStorage:       blacklistRepo,
		SigningKey:             string(conf.Authentication.SigningKey),
		Issuer:                 conf.Authentication.Issuer,
		AccessTokenLifetime:    accessLifetime,
		RefreshTokenLifetime:   refreshLifetime,
		RotateRefreshTokens:    conf.Authentication.RotateRefreshTokens,
		BlacklistAfterRotation: conf.Authentication.BlacklistAfterRotation,
		PasswordHashCost:       conf.Authentication.PasswordHashCost,
	})
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("could not create Authn service: %s", err)
	}

	svc = otel.NewAuthnOTelTracer()(svc)

	assembled := &AuthPingService{
		Service: svc,
		storage: engine,
	}

	if conf.BlacklistFlushJob.Enabled && conf.BlacklistFlushJob.Frequency != "" {
		lJob := helpers.SetupLogger(conf.Logs.Level, serviceName, "Jobs")
		lJob.Infof("token blacklist flush job is enabled")

		scheduler, err := jobs.NewJobScheduler(lJob, conf.BlacklistFlushJob.Frequency, jobs.NewBlacklistFlushJob(blacklistRepo, lJob))
		if err != nil {
			engine.Close()
			return nil, fmt.Errorf("could not schedule token blacklist flush job: %s", err)
		}

		scheduler.Start()
		assembled.scheduler = scheduler
	}

	return assembled, nil
}

func parseLifetime(lifetime string) (time.Duration, error) {
	if lifetime == "" {
		return 0, nil
	}

	return models.ParseDuration(lifetime)
}
