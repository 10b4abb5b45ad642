package routes

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lamassuiot/authping/backend/pkg/controllers"
	headerextractors "github.com/lamassuiot/authping/backend/pkg/routes/middlewares/basic-header-extractors"
	basiclogger "github.com/lamassuiot/authping/backend/pkg/routes/middlewares/basic-logger"
	identityextractors "github.com/lamassuiot/authping/backend/pkg/routes/middlewares/identity-extractors"
	cconfig "github.com/lamassuiot/authping/core/pkg/config"
	"github.com/lamassuiot/authping/core/pkg/models"
	"github.com/sirupsen/logrus"
)

func NewGinEngine(logger *logrus.Entry) *gin.Engine {
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		logger.Debugf("Endpoint: %-6s %s", httpMethod, absolutePath)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"*"}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		gin.Recovery(),
		cors.New(corsConfig),
		headerextractors.RequestMetadataToContextMiddleware(logger),
		identityextractors.RequestMetadataToContextMiddleware(logger),
		basiclogger.UseLogger(logger),
	)

	return router
}

// RunHttpRouter serves routerEngine plus the /health endpoint and returns once the listener is up.
// Port 0 picks a random free port, which is returned.
func RunHttpRouter(logger *logrus.Entry, routerEngine http.Handler, httpServerCfg cconfig.HttpServer, apiInfo models.APIServiceInfo) (*http.Server, int, error) {
	hCheckRoute := controllers.NewHealthCheckRoute(apiInfo)
	mainLogger := logger
	if !httpServerCfg.HealthCheckLogging {
		nooutLogger := logrus.New()
		nooutLogger.Out = io.Discard

		mainLogger = nooutLogger.WithField("", "")
	}

	healthEngine := NewGinEngine(mainLogger)
	healthEngine.GET("/health", hCheckRoute.HealthCheck)

	mainEngine := http.NewServeMux()
	mainEngine.Handle("/", routerEngine)
	mainEngine.Handle("/health", healthEngine)

	addr := fmt.Sprintf("%s:%d", httpServerCfg.ListenAddress, httpServerCfg.Port)

	t := time.Second * 10
	server := &http.Server{
		Addr:         addr,
		Handler:      mainEngine,
		ReadTimeout:  t,
		WriteTimeout: t,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, -1, err
	}

	usedPort := listener.Addr().(*net.TCPAddr).Port

	wg := new(sync.WaitGroup)
	wg.Add(1)
	startLaunching := func() {
		wg.Done()
	}

	httpErrChan := make(chan error, 1)

	addr = strings.TrimSuffix(addr, ":0")

	go func() {
		var err error
		if httpServerCfg.Protocol == cconfig.HTTPS {
			logger.Infof("HTTPS server listening on %s:%d", addr, usedPort)
			startLaunching()
			err = server.ServeTLS(listener, httpServerCfg.CertFile, httpServerCfg.KeyFile)
		} else {
			logger.Infof("HTTP server listening on %s:%d", addr, usedPort)
			startLaunching()
			err = server.Serve(listener)
		}

		if err != nil && err != http.ErrServerClosed {
			logger.Errorf("could not start http server: %s", err)
			httpErrChan <- err
		}
	}()

	// If no error is received within a second of starting the HTTP server, it is considered RUNNING
	ctxTimeout, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	wg.Wait()

	select {
	case <-ctxTimeout.Done():
		logger.Info("HTTP server ready to accept requests")
	case err := <-httpErrChan:
		return nil, -1, err
	}

	return server, usedPort, nil
}
