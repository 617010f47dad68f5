package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/neutron/pkg/entities"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
)

// ErrNoPublishChannel is returned when publishing a panel that has no target channel.
var ErrNoPublishChannel = errors.New("panel has no channel to publish to")

// Publish posts the panel's launcher message into its channel and returns the ID of the posted message.
func (c *Controller) Publish(ctx context.Context, panel *entities.Panel) (string, error) {
	if panel.ChannelID == "" {
		return "", ErrNoPublishChannel
	}

	msg, err := c.platform.SendMessage(ctx, panel.ChannelID, LauncherMessage(panel))
	if err != nil {
		return "", fmt.Errorf("error publishing panel: %w", err)
	}

	c.l.Info("Panel published",
		slog.Int64(logging.KeyPanelID, panel.ID),
		slog.String(logging.KeyChannelID, panel.ChannelID),
	)

	if msg == nil {
		return "", nil
	}
	return msg.ID, nil
}
