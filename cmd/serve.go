package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/NoNoBzH22/CineVault-Lite/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP facade over the sync engine.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := r.config.Server.Host
	if cmd.String("host") != "" {
		host = cmd.String("host")
	}
	port := r.config.Server.Port
	if cmd.Int("port") != 0 {
		port = cmd.Int("port")
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	if r.config.Server.Password != "" {
		router.Use(server.PasswordAuth(r.config.Server.Password))
	} else {
		r.logger.Warn("no API password configured, endpoints are unauthenticated")
	}
	router.Handler(server.NewBridgeHandler(r.engine, r.logger))

	addr := fmt.Sprintf("%s:%d", host, port)
	r.logger.Info("starting HTTP service", "addr", addr)
	r.writePlain("CineVault-Lite started on %s\n", addr)

	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
