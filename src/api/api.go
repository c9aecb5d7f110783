package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/commune-labs/community-gov/src/api/config"
	"github.com/commune-labs/community-gov/src/api/data"
	"github.com/commune-labs/community-gov/src/api/types"
	"github.com/commune-labs/community-gov/src/api/webserver"
	"github.com/commune-labs/community-gov/src/logging"
)

var allModels = []interface{}{
	&types.Community{}, &types.Member{},
	&types.Proposal{}, &types.Vote{},
	&types.Balance{},
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(allModels...); err != nil {
		logging.Fatalf("migrate: %v", err)
	}
}

func main() {
	cfg := config.Load()
	logging.Init(logging.Options{
		Path:       cfg.LogPath,
		MaxSizeMB:  64,
		MaxBackups: 7,
		Compress:   true,
		Debug:      cfg.Debug,
	})
	if cfg.JWTSecret == "" {
		logging.Fatalf("missing env JWT_SECRET")
	}

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)

	rdb := data.MustRedis(cfg.RedisURL)

	router := webserver.New(cfg, db, rdb)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("http: %v", err)
		}
	}()
	logging.Infof("community-gov API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
