package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evsalik/portfolio-web/internal/config"
	"github.com/evsalik/portfolio-web/pkg/web"
	"github.com/evsalik/portfolio-web/web/app"
)

// cliState holds configuration shared by every command.
type cliState struct {
	config *config.Config
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand serves the site.
func newRootCmd() *cobra.Command {
	state := &cliState{}

	rootCmd := &cobra.Command{
		Use:          "portfolio",
		Short:        "Portfolio web server",
		Long:         `Serves the portfolio site: the introduction and the room tour.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			state.config = cfg
			return nil
		},
	}

	serveCmd := newServeCmd(state)
	rootCmd.RunE = serveCmd.RunE
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newRoutesCmd(state))

	return rootCmd
}

func newServeCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := NewServer(state.config)
			if err != nil {
				return fmt.Errorf("initialize server: %w", err)
			}

			if err := srv.Start(); err != nil {
				return fmt.Errorf("start server: %w", err)
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			return run(srv, quit, state.config.ShutdownTimeoutDuration())
		},
	}
}

// run blocks until a signal arrives or the server fails, then shuts down.
// A serve failure is returned after shutdown completes.
func run(srv *Server, quit <-chan os.Signal, timeout time.Duration) error {
	select {
	case <-quit:
		return srv.Shutdown(timeout)
	case err := <-srv.Err():
		if shutdownErr := srv.Shutdown(timeout); shutdownErr != nil {
			return errors.Join(err, shutdownErr)
		}
		return err
	}
}

func newRoutesCmd(state *cliState) *cobra.Command {
	var history string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := state.config.Site.HistoryMode()
			if history != "" {
				m, err := web.ParseHistoryMode(history)
				if err != nil {
					return err
				}
				mode = m
			}

			table, err := app.NewRoutes(mode, state.config.Site.BasePath)
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), table)
		},
	}

	cmd.Flags().StringVar(&history, "history", "", "history mode override (web or hash)")
	return cmd
}

func printRoutes(w io.Writer, table *web.RouteTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ROUTE\tVIEW\tTITLE\tHREF\n")
	for _, v := range table.Views() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Route, v.Template, v.Title, table.Href(v.Route))
	}
	return tw.Flush()
}
