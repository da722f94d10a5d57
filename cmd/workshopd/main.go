package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/craftline/workshop/config"
	"github.com/craftline/workshop/internal/adminapi"
	"github.com/craftline/workshop/internal/app"
	"github.com/craftline/workshop/internal/webserver"
)

var (
	cfile  = flag.String("c", "/etc/workshop.yml", "config file")
	initdb = flag.Bool("initdb", false, "drop and recreate all tables")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*cfile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	webserver.Init(cfg, application.DB())
	adminapi.Init(application)

	go func() {
		if err := webserver.Start(); err != nil {
			zap.L().Fatal("webserver stopped", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	zap.L().Info("shutting down")
}
