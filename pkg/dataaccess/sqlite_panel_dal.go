package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/neutron/pkg/custom"
	"github.com/Jacobbrewer1/neutron/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/neutron/pkg/entities"
)

const panelColumns = `id, guild_id, channel_id, title, description, banner_url, thumbnail_url, button_label,
	button_color, button_emoji, staff_roles, dropdown_options, created_at`

func (s *sqliteStore) CreatePanel(ctx context.Context, panel *entities.Panel) error {
	t := monitoring.ObserveSqlite(panelDalName, "create_panel", collectionPanels)
	defer t.ObserveDuration()

	panel.CreatedAt = custom.Now()

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO panels (guild_id, channel_id, title, description, banner_url, thumbnail_url, button_label,
			button_color, button_emoji, staff_roles, dropdown_options, created_at)
		VALUES (:guild_id, :channel_id, :title, :description, :banner_url, :thumbnail_url, :button_label,
			:button_color, :button_emoji, :staff_roles, :dropdown_options, :created_at)`, panel)
	if err != nil {
		return fmt.Errorf("error inserting panel: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("error getting panel id: %w", err)
	}
	panel.ID = id
	return nil
}

func (s *sqliteStore) GetPanel(ctx context.Context, id int64) (*entities.Panel, error) {
	t := monitoring.ObserveSqlite(panelDalName, "get_panel", collectionPanels)
	defer t.ObserveDuration()

	panel := new(entities.Panel)
	err := s.db.GetContext(ctx, panel, `SELECT `+panelColumns+` FROM panels WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting panel: %w", err)
	}
	return panel, nil
}

func (s *sqliteStore) ListPanelsByGuild(ctx context.Context, guildID string) ([]*entities.Panel, error) {
	t := monitoring.ObserveSqlite(panelDalName, "list_panels_by_guild", collectionPanels)
	defer t.ObserveDuration()

	panels := make([]*entities.Panel, 0)
	if err := s.db.SelectContext(ctx, &panels, `SELECT `+panelColumns+` FROM panels WHERE guild_id = ? ORDER BY id`, guildID); err != nil {
		return nil, fmt.Errorf("error listing panels: %w", err)
	}
	return panels, nil
}

func (s *sqliteStore) DeletePanel(ctx context.Context, id int64) error {
	t := monitoring.ObserveSqlite(panelDalName, "delete_panel", collectionPanels)
	defer t.ObserveDuration()

	res, err := s.db.ExecContext(ctx, `DELETE FROM panels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting panel: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("error getting deleted rows: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}
