package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ettle/strcase"

	core "github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/pkg/api"
)

type scaffoldCmd struct {
	Code                 string            `arg:"" help:"Page code (CreditsUsages, credits-usages and credits_usages are equivalent)."`
	ManifestPath         string            `name:"manifest" required:"" type:"path" help:"Path to the console manifest YAML file to update."`
	Name                 string            `help:"Manifest name recorded when the file is created."`
	Title                string            `help:"Page title override (defaults to the code in title case)."`
	TitleLocalized       map[string]string `help:"Localized titles (locale=title)."`
	Description          string            `help:"Page description override."`
	DescriptionLocalized map[string]string `help:"Localized descriptions (locale=text)."`
	Icon                 string            `help:"Menu icon name."`
	Group                string            `help:"Menu group (credits, billing, catalog, engagement)."`
	Order                int               `help:"Menu position; zero keeps the built-in order."`
	Hidden               bool              `help:"Hide the page from the menu."`
	Overwrite            bool              `help:"Replace an existing manifest entry for the page."`
}

func (cmd *scaffoldCmd) Run(rt *runtime) error {
	code := normalizeCode(cmd.Code)
	if err := validatePageCode(code); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("consolectl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if doc.Name == "" {
		doc.Name = cmd.Name
	}

	entry := cmd.entry(code)
	replaced := false
	for idx := range doc.Pages {
		if doc.Pages[idx].Code != code {
			continue
		}
		if !cmd.Overwrite {
			return fmt.Errorf("consolectl: manifest already defines page %s (use --overwrite to replace)", code)
		}
		doc.Pages[idx] = entry
		replaced = true
		break
	}
	if !replaced {
		doc.Pages = append(doc.Pages, entry)
	}
	sort.Slice(doc.Pages, func(i, j int) bool {
		return doc.Pages[i].Code < doc.Pages[j].Code
	})
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	verb := "Added"
	if replaced {
		verb = "Replaced"
	}
	fmt.Fprintf(rt.out, "✓ %s %s in %s\n", verb, code, manifestPath)
	return nil
}

func (cmd *scaffoldCmd) entry(code string) core.ManifestPage {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		title = strcase.ToCase(code, strcase.TitleCase, ' ')
	}
	entry := core.ManifestPage{
		Code:                 code,
		Title:                title,
		TitleLocalized:       cmd.TitleLocalized,
		Description:          cmd.Description,
		DescriptionLocalized: cmd.DescriptionLocalized,
		Icon:                 cmd.Icon,
		Group:                cmd.Group,
	}
	if cmd.Order != 0 {
		order := cmd.Order
		entry.Order = &order
	}
	if cmd.Hidden {
		hidden := true
		entry.Hidden = &hidden
	}
	return entry
}

func normalizeCode(code string) string {
	return strcase.ToSnake(strings.TrimSpace(code))
}

// validatePageCode rejects codes the built-in registry would refuse when the manifest is applied.
func validatePageCode(code string) error {
	client, err := api.New(api.Config{BaseURL: "http://localhost"})
	if err != nil {
		return err
	}
	known := make([]string, 0, 22)
	for _, page := range core.DefaultPages(client) {
		if page.Definition().Code == code {
			return nil
		}
		known = append(known, page.Definition().Code)
	}
	sort.Strings(known)
	return fmt.Errorf("consolectl: unknown page %q (known: %s)", code, strings.Join(known, ", "))
}

func loadOrInitManifest(path string) (*core.ManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &core.ManifestDocument{
				Version: core.ManifestVersion,
				Pages:   []core.ManifestPage{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("consolectl: stat manifest: %w", err)
	}
	return core.ReadManifest(path)
}

func writeManifest(path string, doc *core.ManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("consolectl: mkdir %s: %w", filepath.Dir(path), err)
	}
	out := *doc
	out.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("consolectl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	if err := core.EncodeManifest(file, &out); err != nil {
		return fmt.Errorf("consolectl: write manifest: %w", err)
	}
	return nil
}
