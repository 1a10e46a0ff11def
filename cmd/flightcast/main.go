package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/nuptial/flightcast/internal/api"
	"github.com/nuptial/flightcast/internal/engine"
	"github.com/nuptial/flightcast/internal/store"
	"github.com/nuptial/flightcast/internal/weather"
)

var cli struct {
	DB   string                   `help:"Path to SQLite database." default:"data/flightcast.db" env:"FLIGHTCAST_DB"`
	Port string                   `help:"HTTP server port." default:"8080" env:"PORT"`
	Env  kongdotenv.ENVFileConfig `help:"Path to .env file." optional:"" name:"env"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("flightcast"),
		kong.Description("Nuptial flight forecasting service."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	eng := engine.New(weather.NewClient(), st)
	server := api.NewServer(st, eng, cli.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("starting server on :%s", cli.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
