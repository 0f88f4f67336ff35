package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-billing-console/pkg/config"
)

type cli struct {
	Serve    serveCmd    `cmd:"" help:"Run the console HTTP server."`
	Stats    statsCmd    `cmd:"" help:"Fetch a page and print its statistics cards."`
	Pages    pagesCmd    `cmd:"" help:"List the console pages and their actions."`
	Scaffold scaffoldCmd `cmd:"" help:"Add or update a page entry in a console manifest."`
}

// runtime carries process dependencies into commands.
type runtime struct {
	ctx        context.Context
	out        io.Writer
	loadConfig func() (*config.Config, error)
}

func main() {
	kctx := kong.Parse(&cli{},
		kong.Name("consolectl"),
		kong.Description("Operate the billing console: serve it, inspect pages and edit manifests."),
		kong.UsageOnError(),
	)
	err := kctx.Run(&runtime{
		ctx:        context.Background(),
		out:        os.Stdout,
		loadConfig: config.Load,
	})
	kctx.FatalIfErrorf(err)
}
