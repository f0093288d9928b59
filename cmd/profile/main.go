package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wichananm65/zoo-backend/internal/account"
	"github.com/wichananm65/zoo-backend/internal/config"
	"github.com/wichananm65/zoo-backend/internal/logger"
)

// main fetches a profile from the profile service and prints the account page.
func main() {
	email := flag.String("email", "", "account email")
	roleName := flag.String("role", "Customer", "Customer, Employee or Manager")
	flag.Parse()

	log, err := logger.New("warn", false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadProfile()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	role, err := account.ParseRole(*roleName)
	if err != nil {
		log.Fatal("parse role", zap.Error(err))
	}

	page := account.NewPage(account.NewClient(cfg.BaseURL, cfg.Timeout))
	state := page.Sync(context.Background(), *email, role)
	if state.Phase == account.PhaseFailed {
		log.Warn("profile fetch failed", zap.String("email", *email), zap.String("reason", state.Message))
	}

	if err := account.Render(os.Stdout, role, state); err != nil {
		log.Fatal("render", zap.Error(err))
	}
	if state.Phase == account.PhaseFailed {
		os.Exit(1)
	}
}
