package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"peptide_design_go/config"
	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
	common "peptide_design_go/utils"
)

// Run executes the serve command until interrupted
func Run(args []string) {

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	addr := fs.String("addr", cfg.Addr, "Listen address")
	tablePath := fs.String("table", cfg.Table, "Descriptor score table")
	schemeName := fs.String("scheme", cfg.Scheme.String(), "Reduction scheme the table was built with")

	if err := fs.Parse(args); err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	logger := common.NewLogger("serve")

	scheme, err := reduction.ParseScheme(*schemeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	table, err := score_table.LoadFile(*tablePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           New(table, scheme, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving %d descriptors (%s) on %s", len(table), scheme, *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
