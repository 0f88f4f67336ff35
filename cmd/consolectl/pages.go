package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	core "github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/pkg/api"
)

type pagesCmd struct {
	Manifest   string `help:"Manifest applied on top of the built-in pages." env:"CONSOLE_MANIFEST" type:"path"`
	APIBaseURL string `help:"Backend base URL used to build the page clients." env:"CONSOLE_API_BASE_URL" default:"http://localhost:8000"`
	Locale     string `help:"Locale used for titles." default:"en"`
	All        bool   `help:"Include hidden pages."`
}

func (cmd *pagesCmd) Run(rt *runtime) error {
	registry, err := cmd.registry()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(rt.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tTITLE\tGROUP\tPATH\tACTIONS")
	for _, def := range registry.Definitions() {
		if def.Hidden && !cmd.All {
			continue
		}
		actions := "-"
		if len(def.Actions) > 0 {
			actions = strings.Join(def.Actions, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", def.Code, def.TitleForLocale(cmd.Locale), def.Group, def.Path, actions)
	}
	return tw.Flush()
}

func (cmd *pagesCmd) registry() (*core.Registry, error) {
	client, err := api.New(api.Config{BaseURL: cmd.APIBaseURL})
	if err != nil {
		return nil, err
	}
	registry, err := core.NewRegistry(core.DefaultPages(client)...)
	if err != nil {
		return nil, err
	}
	if cmd.Manifest != "" {
		if _, err := registry.LoadManifestFile(cmd.Manifest); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
