package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"shopping-api/cmd"
	"shopping-api/config"
	"shopping-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Application startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 解析命令行参数
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file (default ./config.yaml or ./config/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	app, err := cmd.NewBuilder(cfg).Build(context.Background())
	if err != nil {
		return err
	}
	return app.Run()
}
