package main

import (
	"fmt"
	"os"

	account "auction-house/internal/accountService"
	auction "auction-house/internal/auctionService"
	"auction-house/internal/config"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	"auction-house/internal/session"
	"auction-house/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	repo, err := repository.Open(cfg.Database.SQLitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	sessions := session.NewStore()
	auctionSvc := auction.NewAuctionService(repo)
	accountSvc := account.NewAccountService(repo)

	router := server.SetupRouter(auctionSvc, accountSvc, sessions, cfg)

	addr := cfg.Addr()
	utils.Info("Starting auction house server", map[string]any{"addr": addr, "db": cfg.Database.SQLitePath})
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
