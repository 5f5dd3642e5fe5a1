package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/DanDanTheMuffinMan/nova-memory-server/capture"
	"github.com/DanDanTheMuffinMan/nova-memory-server/config"
	"github.com/DanDanTheMuffinMan/nova-memory-server/device"
	"github.com/DanDanTheMuffinMan/nova-memory-server/peripheral"
	"github.com/DanDanTheMuffinMan/nova-memory-server/store"
	"github.com/DanDanTheMuffinMan/nova-memory-server/stream"
	"github.com/DanDanTheMuffinMan/nova-memory-server/webservice"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Listen = ":" + port
	}

	dev, state := device.Probe(log)
	log.Info("peripheral probe complete", zap.String("state", device.Describe(state)))

	control := peripheral.NewController(dev, log)
	frames := capture.NewService(dev, cfg.Capture.JPEGQuality, cfg.Stream.JPEGQuality, log)
	streams := stream.NewManager(frames, state, cfg.Stream.MaxFPS, log)

	wm := webservice.New(
		cfg, log, state,
		control, frames, streams,
		store.NewMemoryStore(), store.NewJournalStore(), store.NewMediaStore(),
	)
	if err := wm.Run(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
