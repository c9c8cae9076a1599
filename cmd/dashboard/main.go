// Package main runs the terminal holdings dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/aristath/holdings-dashboard/internal/api"
	"github.com/aristath/holdings-dashboard/internal/config"
	"github.com/aristath/holdings-dashboard/internal/holdings"
	"github.com/aristath/holdings-dashboard/internal/render"
	"github.com/aristath/holdings-dashboard/internal/theme"
	"github.com/aristath/holdings-dashboard/internal/ui"
	"github.com/aristath/holdings-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.LoadDashboard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	apiURL := flag.String("api-url", cfg.APIURL, "Holdings service URL")
	once := flag.Bool("once", false, "Print the holdings table once and exit")
	flag.Parse()
	cfg.APIURL = strings.TrimRight(*apiURL, "/")

	// The terminal belongs to the UI, so logs go to a file.
	log, closer, err := logger.NewFile(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		File:   cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	logger.SetGlobalLogger(log)

	client := api.NewClient(cfg.APIURL, cfg.HTTPTimeout)

	if *once {
		if err := printOnce(client); err != nil {
			log.Error().Err(err).Msg("Snapshot failed")
			fmt.Fprintf(os.Stderr, "Error loading holdings: %s\n", api.Detail(err))
			closer.Close()
			os.Exit(1)
		}
		return
	}

	log.Info().
		Str("api_url", cfg.APIURL).
		Dur("refresh", cfg.RefreshInterval).
		Bool("discard_stale", cfg.DiscardStale).
		Msg("Starting dashboard")

	m := ui.NewModel(client, ui.Options{
		APIURL:          cfg.APIURL,
		RefreshInterval: cfg.RefreshInterval,
		ToastDuration:   cfg.ToastDuration,
		DiscardStale:    cfg.DiscardStale,
		Log:             log,
		Now:             time.Now,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("Dashboard exited with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
	log.Info().Msg("Dashboard stopped")
}

// printOnce runs a single refresh cycle and paints it to stdout.
func printOnce(client *api.Client) error {
	ctx := api.WithRequestID(context.Background(), uuid.NewString())
	records, err := client.Holdings(ctx)
	if err != nil {
		return err
	}
	rows, totals := holdings.Derive(records)
	vm := render.Build(rows, totals, time.Now())
	fmt.Println(ui.PaintSnapshot(vm, theme.Default))
	return nil
}
