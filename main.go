package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"eve-arbitrage/internal/api"
	"eve-arbitrage/internal/config"
	"eve-arbitrage/internal/db"
	"eve-arbitrage/internal/engine"
	"eve-arbitrage/internal/feed"
	"eve-arbitrage/internal/graph"
	"eve-arbitrage/internal/logger"
	"eve-arbitrage/internal/market"
	"eve-arbitrage/internal/scheduler"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (yaml/toml/json)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	demo := flag.Bool("demo", false, "feed the store from the built-in deterministic generator")
	seed := flag.Int64("seed", 1, "seed for the demo generator")
	flag.Parse()

	logger.Banner(version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("CONFIG", "load failed: %v", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.ListenPort = *port
	}
	logger.SetDebug(cfg.Debug)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("DB", "failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	store := market.NewStore()
	if persisted := database.LoadSamples(); len(persisted) > 0 {
		accepted, _ := feed.Ingest(store, persisted)
		logger.Info("DB", "warmed store with %d persisted samples", accepted)
	}

	universe := graph.NewUniverse()
	for _, route := range cfg.Routes {
		universe.AddRoute(route.From, route.To, route.Jumps)
	}
	for _, region := range cfg.Regions {
		if !universe.HasRegion(region) {
			logger.Warn("GRAPH", "region %s has no configured routes, its opportunities will be gated out", region)
		}
	}
	logger.Info("GRAPH", "route graph covers %d regions", universe.Regions())

	scanCfg := cfg.ScanConfig()
	detector := engine.NewDetector(scanCfg, universe.JumpDistance)
	sched := scheduler.New(store, detector, scanCfg)
	sched.Recorder = database

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *demo {
		poller := &feed.Poller{
			Store:    store,
			Source:   feed.NewGenerator(*seed, cfg.Regions),
			Interval: scanCfg.ScanInterval,
			OnRefresh: func(ctx context.Context) {
				sched.TriggerScan(ctx)
			},
			OnFailure: sched.MarkStale,
		}
		go poller.Run(ctx)
		logger.Info("FEED", "demo generator polling every %s", scanCfg.ScanInterval)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", cfg.ListenPort),
		Handler: api.NewServer(store, sched, database).Handler(),
	}

	go func() {
		logger.Server(srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP", "server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("MAIN", "shutting down")
	srv.Shutdown(context.Background())
}
