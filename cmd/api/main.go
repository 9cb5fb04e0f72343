package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billy/internal/config"
	"github.com/MrJamesThe3rd/billy/internal/datafile"
	billyHttp "github.com/MrJamesThe3rd/billy/internal/http"
	billsHandler "github.com/MrJamesThe3rd/billy/internal/http/bills"
	importHandler "github.com/MrJamesThe3rd/billy/internal/http/importcsv"
	"github.com/MrJamesThe3rd/billy/internal/importer"
	"github.com/MrJamesThe3rd/billy/internal/logging"
)

func main() {
	_ = godotenv.Load()

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		data          = datafile.New(cfg.Data.File)
		importService = importer.NewService()
	)

	var (
		billsH  = billsHandler.NewHandler(data)
		importH = importHandler.NewHandler(importService, data)
	)

	router := billyHttp.New(billsH, importH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr, "data_file", cfg.Data.File)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
