// Package main runs the frontend dev server: static files from the program's
// own directory, with permissive CORS headers so the pages can call the
// backend on another port.
package main

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"runtime"

	"github.com/fatih/color"

	"github.com/f4ah6o/frontserve-go/internal/config"
	"github.com/f4ah6o/frontserve-go/internal/locate"
	"github.com/f4ah6o/frontserve-go/internal/middleware"
	"github.com/f4ah6o/frontserve-go/internal/static"
)

// newServer builds the http.Server serving root with the given settings.
func newServer(cfg *config.Config, root string) (*http.Server, error) {
	files, err := static.New(root, cfg.IndexFiles)
	if err != nil {
		return nil, err
	}

	var handler http.Handler = files
	handler = middleware.CORS(cfg.CORS)(handler)
	handler = middleware.AccessLog(nil)(handler)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
	}, nil
}

func printBanner(w io.Writer, cfg *config.Config) {
	link := color.New(color.FgCyan, color.Underline).SprintFunc()
	fmt.Fprintf(w, "Frontend server running at %s\n", link(cfg.PublicURL))
	fmt.Fprintf(w, "Backend should be running at %s\n", link(cfg.BackendURL))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	_, source, _, _ := runtime.Caller(0)
	root, err := locate.ProgramDir(source)
	if err != nil {
		log.Fatalf("Failed to resolve directory: %v", err)
	}

	srv, err := newServer(cfg, root)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", srv.Addr, err)
	}

	printBanner(color.Output, cfg)

	if err := srv.Serve(ln); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
