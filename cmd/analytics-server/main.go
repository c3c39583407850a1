// Command analytics-server is the HTTP entry point for the analytics slide
// generation service: it loads configuration, wires the
// validate→resolve→shape→generate→assemble pipeline behind
// internal/orchestrator, and serves it over internal/httpapi's router with
// graceful shutdown. Structure mirrors the teacher's cmd/apiserver/main.go
// (flag parsing, config-file-with-fallback, signal-driven shutdown); the
// teacher's paired gRPC server goroutine is dropped since this service has
// no gRPC surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/slidegrove/analytics-engine/internal/chartgen"
	"github.com/slidegrove/analytics-engine/internal/config"
	"github.com/slidegrove/analytics-engine/internal/httpapi"
	"github.com/slidegrove/analytics-engine/internal/insight"
	"github.com/slidegrove/analytics-engine/internal/llmclient"
	"github.com/slidegrove/analytics-engine/internal/logging"
	"github.com/slidegrove/analytics-engine/internal/orchestrator"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; falling back to ANALYTICS_* env vars and defaults\n", err)
		cfg, err = config.LoadFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log, err := logging.NewLogger(logging.LogConfig(cfg.Log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log.Info("starting analytics-server",
		logging.Int("port", cfg.Server.Port),
		logging.String("mode", cfg.Server.Mode),
		logging.String("llm_model", cfg.LLM.Model),
	)

	var provider llmclient.Provider
	if cfg.LLM.APIKey == "" {
		log.Warn("llm.api_key is empty; insight generation will use the no-op provider and always fall back to template narration")
		provider = llmclient.NopProvider{}
	} else {
		provider = llmclient.NewHTTPProvider(llmclient.HTTPConfig{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
		})
	}

	gen := insight.NewGenerator(provider, cfg.LLM, log)
	editorCfg := chartgen.EditorConfig{
		Enabled:               cfg.ChartDataStore.BaseURL != "",
		ChartDataStoreBaseURL: cfg.ChartDataStore.BaseURL,
	}
	orch := orchestrator.New(gen, log, editorCfg)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Orchestrator: orch,
		Logger:       log,
		RateLimit:    cfg.RateLimit,
		Mode:         cfg.Server.Mode,
	})

	requestTimeout := cfg.Server.RequestTimeout
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		router.ServeHTTP(w, r.WithContext(ctx))
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", logging.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down analytics-server")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", logging.Err(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return config.Load(path)
}
