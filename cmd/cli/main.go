package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pageza/recipe-tracker/backend/internal/cli"
	"github.com/pageza/recipe-tracker/backend/internal/client"
	"github.com/pageza/recipe-tracker/backend/internal/session"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "Recipe tracker API address")
	credPath := flag.String("credentials", "", "File the session token is cached in")
	flag.Parse()

	path := *credPath
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		path = p
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(*server, &http.Client{Timeout: 30 * time.Second})
	app := cli.New(api, session.FileStore{Path: path}, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
