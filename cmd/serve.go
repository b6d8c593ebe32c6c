package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timesheet/internal/timeutil"
	"timesheet/session"
	"timesheet/web"
)

var (
	servePort   int
	serveWeek   string
	serveNoOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web clock and weekly timesheet UI",
	Long: `Start a local HTTP server with the clock and the weekly timesheet.

The page clocks in and out, shows the running time tinted by the current shift,
lists the selected week and exports it as PDF, Excel or CSV into the export
directory. The open session lives in the server process; stopping the server
while clocked in discards it.

JSON endpoints:
- GET  /api/status
- POST /api/clock-in
- POST /api/clock-out
- GET  /api/week/{date}
- POST /api/export/{date}?format=pdf|excel|csv`,
	Example: `
  # Start local server on the configured port
  timesheet serve

  # Start on another port, open a given week, and do not launch a browser
  timesheet serve --port 9090 --week 2024-03-06 --no-open
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		port := cfg.Serve.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		startPath, err := resolveServeStartPath(serveWeek)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		controller := session.NewController(store, session.WithLogger(slog.Default()))

		addr := fmt.Sprintf("localhost:%d", port)
		server := &http.Server{
			Addr:              addr,
			Handler:           web.NewServer(store, controller, *cfg),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", port)
		slog.Info("web server started", "addr", addr, "db", cfg.Storage.DBPath)
		fmt.Printf("Listening on %s\n", listenURL)
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL + startPath); openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", openErr)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			if _, open := controller.Current(); open {
				slog.Warn("open session discarded on shutdown")
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local web server (default: serve.port)")
	serveCmd.Flags().StringVar(&serveWeek, "week", "", "Any day of the week to open first, YYYY-MM-DD")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

// resolveServeStartPath returns the path the browser opens first.
func resolveServeStartPath(week string) (string, error) {
	week = strings.TrimSpace(week)
	if week == "" {
		return "/", nil
	}
	parsed, err := time.ParseInLocation(timeutil.DateLayout, week, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid --week value %q (expected YYYY-MM-DD)", week)
	}
	return "/?date=" + timeutil.DateKey(parsed), nil
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
