package main

import (
	"context"
	"log"
	"time"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/cmd/server"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/config"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/storage"
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := storage.NewPostgresDB(cfg.PostgresConnStr())
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(
		context.Background(),
		(30 * time.Second),
	)
	defer cancel()

	if err := storage.Migrate(ctx, db); err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr: cfg.Server.Port,
		DB:   db,
	})
	srv.Run()
}
