package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/neutron/pkg/entities"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
)

var errNoPanels = errors.New("no panels listed")

// panelsFile is the layout of the panel seed file.
type panelsFile struct {
	Panels []*entities.Panel `yaml:"panels"`
}

// seedPanels creates the panels listed in a YAML file. A panel is skipped when its guild already has a panel with
// the same title, so the file can be applied on every start.
func (a *App) seedPanels(ctx context.Context, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading panels file: %w", err)
	}

	f, err := parsePanels(b)
	if err != nil {
		return fmt.Errorf("error parsing panels file %s: %w", path, err)
	}

	created := 0
	for i, p := range f.Panels {
		if p == nil {
			continue
		}

		if err := validatePanel(p); err != nil {
			return fmt.Errorf("panel %d in %s is invalid: %w", i, path, err)
		}
		p.ApplyDefaults()

		existing, err := a.store.ListPanelsByGuild(ctx, p.GuildID)
		if err != nil {
			return fmt.Errorf("error listing panels: %w", err)
		}
		if hasTitle(existing, p.Title) {
			a.Debug("Panel already exists, skipping",
				slog.String(logging.KeyGuildID, p.GuildID),
				slog.String("title", p.Title),
			)
			continue
		}

		if err := a.store.CreatePanel(ctx, p); err != nil {
			return fmt.Errorf("error creating panel: %w", err)
		}
		created++
	}

	a.Info("Panels seeded", slog.String("file", path), slog.Int("created", created), slog.Int("listed", len(f.Panels)))
	return nil
}

// parsePanels decodes a panel seed file. Unknown keys, syntax errors and a file without panels are all errors.
func parsePanels(b []byte) (*panelsFile, error) {
	if _, err := parser.ParseBytes(b, 0); err != nil {
		return nil, err
	}

	f := new(panelsFile)
	err := yaml.NewDecoder(bytes.NewReader(b), yaml.Strict()).Decode(f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(f.Panels) == 0 {
		return nil, errNoPanels
	}
	return f, nil
}

func hasTitle(panels []*entities.Panel, title string) bool {
	for _, p := range panels {
		if p.Title == title {
			return true
		}
	}
	return false
}
