package main

import (
	"fmt"

	"teamtrack/internal/auth"
	"teamtrack/internal/config"
	"teamtrack/internal/database"
	"teamtrack/internal/logging"
	"teamtrack/internal/mailer"
	"teamtrack/internal/server"
)

func main() {
	cfg := config.Load()
	logging.Init()
	database.Init(cfg.DBDSN)

	tokens := auth.NewTokenService(cfg.TokenSecret)

	mail := mailer.New(cfg)
	mail.Start()

	r := server.NewRouter(cfg, tokens, mail)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logging.Logger.Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		logging.Logger.Fatalf("server error: %v", err)
	}
}
