package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"expenditure/internal/api"
	"expenditure/internal/cli"
	apphttp "expenditure/internal/http"
	"expenditure/internal/log"
	"expenditure/internal/middleware/trace"
)

func main() {
	bootstrap := log.New(log.DefaultConfig())

	if err := cli.LoadEnvFile(); err != nil {
		bootstrap.Warn("Failed to load .env file", log.FieldError, err)
	}

	cfg := cli.LoadAndValidateConfig(bootstrap)

	logger, err := cli.SetupLogger(cfg)
	if err != nil {
		bootstrap.Error("Invalid log configuration", log.FieldError, err)
		os.Exit(1)
	}

	// The dashboard fans out four calls per page to the same host.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 8

	client, err := api.New(cfg.APIProxyTarget,
		api.WithLogger(logger),
		api.WithTransport(transport),
		api.WithUserAgent(cfg.UserAgent),
		api.WithRequestID(trace.GetRequestID),
	)
	if err != nil {
		logger.Error("Failed to create API client", log.FieldError, err, log.FieldTarget, cfg.APIProxyTarget)
		os.Exit(1)
	}

	opts := apphttp.Options{Logger: logger}
	if cfg.DevProxy {
		opts.ProxyTarget = cfg.APIProxyTarget
	}

	srv, err := apphttp.NewServer(":"+cfg.Port, client, opts)
	if err != nil {
		logger.Error("Failed to create server", log.FieldError, err)
		os.Exit(1)
	}

	// Writes must outlast the 10s API timeout so failures still render.
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = api.DefaultTimeout + 5*time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	_, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, srv.Shutdown)

	logger.Info("Starting expenditure server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		"api_base", client.BaseURL(),
		"dev_proxy", cfg.DevProxy)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
