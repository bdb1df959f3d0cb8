// Package main runs the liftlog MCP server over stdio, for local MCP clients.
// The same tools are mounted on the main backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/exercises"
	"github.com/2beens/liftlog/internal/logging"
	liftlogmcp "github.com/2beens/liftlog/internal/mcp"
	"github.com/2beens/liftlog/internal/progress"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	userID := flag.String("user", os.Getenv("LIFTLOG_USER"), "id of the user the tools act for (default $LIFTLOG_USER)")
	flag.Parse()

	// stdout carries the protocol, logs go to a file or stderr
	if logFile := os.Getenv("LIFTLOG_MCP_LOG_FILE"); logFile != "" {
		logging.Setup(logging.LoggerSetupParams{
			LogFileName: logFile,
			LogLevel:    "info",
		})
	} else {
		log.SetOutput(os.Stderr)
	}

	if *userID == "" {
		log.Fatalln("user not set, use -user or LIFTLOG_USER")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         os.Getenv("LIFTLOG_DB_USER"),
		DBPassword:     os.Getenv("LIFTLOG_DB_PASSWORD"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	toolsService := liftlogmcp.NewToolsService(
		exercises.NewService(exercises.NewRepo(dbPool), nil, nil),
		progress.NewService(progress.NewRepo(dbPool), nil),
		liftlogmcp.NewSchemaRepo(dbPool),
	)
	server := liftlogmcp.NewServer(toolsService, *userID)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Errorf("mcp server: %s", err)
	}
}
