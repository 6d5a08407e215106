// cmd/recommend-portfolio/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"robo-advisor/internal/codehook"
	"robo-advisor/internal/common/aws"
	"robo-advisor/internal/common/config"
	"robo-advisor/internal/common/logger"
	"robo-advisor/internal/common/metrics"
	"robo-advisor/internal/common/observability"
	"robo-advisor/internal/dispatcher"
	rp "robo-advisor/internal/intents/recommend-portfolio"
	"robo-advisor/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format).With(
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting code hook", zap.String("mode", cfg.Runtime.Mode))

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var (
		recorder *metrics.Recorder
		obsOpts  = observability.Options{
			TracingEnabled: cfg.Tracing.Enabled,
			SampleRatio:    cfg.Tracing.SampleRatio,
		}
	)
	if cfg.Metrics.Enabled {
		recorder = metrics.New(registry, cfg.Metrics.Namespace)
		obsOpts.Registerer = registry
	}

	obs, err := observability.New(cfg.App.Name, obsOpts)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			zapLog.Warn("observability shutdown failed", zap.Error(err))
		}
	}()

	// --- Fulfillment publisher ---
	var publisher rp.Publisher
	if cfg.Notifications.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.SNS.Region, cfg.Notifications.SNS.TopicARN)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		publisher = snsClient
		zapLog.Info("SNS publisher configured", zap.String("topicArn", cfg.Notifications.SNS.TopicARN))
	}

	// --- Intent handlers ---
	handlers := map[string]dispatcher.IntentHandler{}

	if config.IsIntentEnabled(cfg, rp.IntentName) {
		intentCfg := rp.DefaultConfig()
		if settings, ok := config.LookupIntent(cfg, rp.IntentName); ok && settings.ServiceName != "" {
			intentCfg.ServiceName = settings.ServiceName
		}
		handler, err := rp.NewHandler(intentCfg, rp.Dependencies{
			Logger:    log,
			Metrics:   recorder,
			Publisher: publisher,
		})
		if err != nil {
			zapLog.Fatal("failed to create recommendPortfolio handler", zap.Error(err))
		}
		handlers[rp.IntentName] = handler
	} else {
		zapLog.Info("intent disabled", zap.String("intent", rp.IntentName))
	}

	d := dispatcher.New(handlers, log)
	zapLog.Info("intent handlers registered", zap.Strings("intents", d.Intents()))

	fn := codehook.New(codehook.Options{
		Dispatcher:    d,
		Logger:        log,
		Metrics:       recorder,
		Observability: obs,
	})

	if cfg.Runtime.Mode == config.ModeLambda {
		// lambda.Start never returns; deferred shutdowns only run in http mode.
		lambda.Start(fn.Invoke)
		return
	}

	// --- HTTP mode ---
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = registry
	}
	srv := server.New(cfg.Runtime.HTTPAddress, fn, gatherer, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		zapLog.Info("Shutdown signal received, stopping server...")
	case err := <-errCh:
		if err != nil {
			zapLog.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Runtime.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}
	zapLog.Info("Code hook stopped gracefully")
}
