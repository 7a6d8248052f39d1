// Command vectorvaultd serves a single in-memory index over HTTP (spec §6).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	vectorvault "github.com/Sant0-9/VectorVault"
	"github.com/Sant0-9/VectorVault/httpapi"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("vectorvaultd", flag.ContinueOnError)
	host := fs.String("host", "0.0.0.0", "address to bind the HTTP server")
	port := fs.Int("port", 8080, "port to bind the HTTP server")
	dim := fs.Int("dim", 384, "vector dimension for the index")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "vectorvaultd serves an in-memory HNSW vector index over HTTP.")
		fmt.Fprintln(fs.Output(), "usage: vectorvaultd [--dim <n>] [--host <addr>] [--port <n>]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if *dim <= 0 {
		fmt.Fprintln(fs.Output(), "vectorvaultd: --dim must be positive")
		fs.Usage()
		return 1
	}

	logger := vectorvault.NewJSONLogger(slog.LevelInfo)

	idx, err := vectorvault.New(*dim, vectorvault.WithM(16), vectorvault.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create index", "error", err)
		return 1
	}

	addr := net.JoinHostPort(*host, fmt.Sprintf("%d", *port))
	srv := httpapi.NewServer(addr, idx, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			return 1
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
			return 1
		}
	}

	return 0
}
