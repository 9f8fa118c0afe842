package main

import (
	"os"

	"planner-backend/internal/shared/config"
	"planner-backend/internal/shared/server"
	"planner-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	r := server.NewRouter(cfg)

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.starting", map[string]any{"addr": addr, "env": cfg.Env})

	if err := r.Run(addr); err != nil {
		telemetry.Error("server.exit", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
