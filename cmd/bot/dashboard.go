package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/Jacobbrewer1/neutron/pkg/dataaccess"
	"github.com/Jacobbrewer1/neutron/pkg/entities"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/Jacobbrewer1/neutron/pkg/request"
	"github.com/Jacobbrewer1/neutron/pkg/tickets"
	"github.com/gorilla/mux"
)

// PathAPI is the prefix of the dashboard API.
const PathAPI = "/api"

const (
	maxDropdownOptions = 25
	maxOptionLabel     = 100
	maxButtonLabel     = 80
	maxTitle           = 256
	maxDescription     = 4096
)

var errPanelNotFound = errors.New("panel not found")

// panelRequest is the body of a panel create request.
type panelRequest struct {
	ChannelID       string                    `json:"channel_id"`
	Title           string                    `json:"title"`
	Description     string                    `json:"description"`
	BannerURL       string                    `json:"banner_url"`
	ThumbnailURL    string                    `json:"thumbnail_url"`
	ButtonLabel     string                    `json:"button_label"`
	ButtonColor     entities.ButtonColor      `json:"button_color"`
	ButtonEmoji     string                    `json:"button_emoji"`
	StaffRoles      []string                  `json:"staff_roles"`
	DropdownOptions []entities.DropdownOption `json:"dropdown_options"`
}

// publishResponse is the body of a publish response.
type publishResponse struct {
	MessageID string `json:"message_id"`
}

func (a *App) dashboardRoutes(r *mux.Router) {
	r.HandleFunc("/guilds/{guild_id:[0-9]+}/panels", middlewareHttp(a.listPanels(), authOptionDashboard, a)).Methods(http.MethodGet)
	r.HandleFunc("/guilds/{guild_id:[0-9]+}/panels", middlewareHttp(a.createPanel(), authOptionDashboard, a)).Methods(http.MethodPost)
	r.HandleFunc("/panels/{panel_id:[0-9]+}", middlewareHttp(a.getPanel(), authOptionDashboard, a)).Methods(http.MethodGet)
	r.HandleFunc("/panels/{panel_id:[0-9]+}", middlewareHttp(a.deletePanel(), authOptionDashboard, a)).Methods(http.MethodDelete)
	r.HandleFunc("/panels/{panel_id:[0-9]+}/publish", middlewareHttp(a.publishPanel(), authOptionDashboard, a)).Methods(http.MethodPost)
}

func (a *App) listPanels() Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := mux.Vars(r)["guild_id"]

		panels, err := a.store.ListPanelsByGuild(r.Context(), guildID)
		if err != nil {
			a.internalError(w, "Error listing panels", err)
			return
		}

		request.Encode(a.Logger, w, http.StatusOK, panels)
	}
}

func (a *App) createPanel() Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		body := new(panelRequest)
		if err := request.Decode(r, body); err != nil {
			request.Encode(a.Logger, w, http.StatusBadRequest, request.NewMessageError("Invalid request body", err))
			return
		}

		panel := &entities.Panel{
			GuildID:         mux.Vars(r)["guild_id"],
			ChannelID:       body.ChannelID,
			Title:           body.Title,
			Description:     body.Description,
			BannerURL:       body.BannerURL,
			ThumbnailURL:    body.ThumbnailURL,
			ButtonLabel:     body.ButtonLabel,
			ButtonColor:     body.ButtonColor,
			ButtonEmoji:     body.ButtonEmoji,
			StaffRoles:      body.StaffRoles,
			DropdownOptions: body.DropdownOptions,
		}

		if err := validatePanel(panel); err != nil {
			request.Encode(a.Logger, w, http.StatusBadRequest, request.NewMessageError("Invalid panel", err))
			return
		}
		panel.ApplyDefaults()

		if err := a.store.CreatePanel(r.Context(), panel); err != nil {
			a.internalError(w, "Error creating panel", err)
			return
		}

		a.Info("Panel created",
			slog.Int64(logging.KeyPanelID, panel.ID),
			slog.String(logging.KeyGuildID, panel.GuildID),
		)
		request.Encode(a.Logger, w, http.StatusCreated, panel)
	}
}

func (a *App) getPanel() Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		panel, ok := a.panelFromPath(w, r)
		if !ok {
			return
		}

		request.Encode(a.Logger, w, http.StatusOK, panel)
	}
}

func (a *App) deletePanel() Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := panelID(r)
		if err != nil {
			request.Encode(a.Logger, w, http.StatusNotFound, request.NewMessage(errPanelNotFound.Error()))
			return
		}

		err = a.store.DeletePanel(r.Context(), id)
		if errors.Is(err, dataaccess.ErrNotFound) {
			request.Encode(a.Logger, w, http.StatusNotFound, request.NewMessage(errPanelNotFound.Error()))
			return
		} else if err != nil {
			a.internalError(w, "Error deleting panel", err)
			return
		}

		a.Info("Panel deleted", slog.Int64(logging.KeyPanelID, id))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *App) publishPanel() Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		panel, ok := a.panelFromPath(w, r)
		if !ok {
			return
		}

		messageID, err := a.tickets.Publish(r.Context(), panel)
		if errors.Is(err, tickets.ErrNoPublishChannel) {
			request.Encode(a.Logger, w, http.StatusBadRequest, request.NewMessage(err.Error()))
			return
		} else if err != nil {
			a.Error("Error publishing panel",
				slog.Int64(logging.KeyPanelID, panel.ID),
				slog.String(logging.KeyError, err.Error()),
			)
			request.Encode(a.Logger, w, http.StatusBadGateway, request.NewMessageError("Error publishing panel", err))
			return
		}

		request.Encode(a.Logger, w, http.StatusOK, &publishResponse{MessageID: messageID})
	}
}

// panelFromPath loads the panel named by the request path, writing the error response if it cannot.
func (a *App) panelFromPath(w http.ResponseWriter, r *http.Request) (*entities.Panel, bool) {
	id, err := panelID(r)
	if err != nil {
		request.Encode(a.Logger, w, http.StatusNotFound, request.NewMessage(errPanelNotFound.Error()))
		return nil, false
	}

	panel, err := a.store.GetPanel(r.Context(), id)
	if errors.Is(err, dataaccess.ErrNotFound) {
		request.Encode(a.Logger, w, http.StatusNotFound, request.NewMessage(errPanelNotFound.Error()))
		return nil, false
	} else if err != nil {
		a.internalError(w, "Error getting panel", err)
		return nil, false
	}
	return panel, true
}

func (a *App) internalError(w http.ResponseWriter, msg string, err error) {
	a.Error(msg, slog.String(logging.KeyError, err.Error()))
	request.Encode(a.Logger, w, http.StatusInternalServerError, request.NewMessage(request.ErrInternalServer.Error()))
}

func panelID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["panel_id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, errPanelNotFound
	}
	return id, nil
}

// validatePanel checks the panel fits what the platform accepts. Unset display fields are allowed, defaults fill
// them in.
func validatePanel(p *entities.Panel) error {
	if p.GuildID == "" {
		return errors.New("guild_id is required")
	}
	if p.ButtonColor != "" && !p.ButtonColor.Valid() {
		return fmt.Errorf("button_color must be one of blurple, gray, green or red, got %q", p.ButtonColor)
	}
	if utf8.RuneCountInString(p.Title) > maxTitle {
		return fmt.Errorf("title must be at most %d characters", maxTitle)
	}
	if utf8.RuneCountInString(p.Description) > maxDescription {
		return fmt.Errorf("description must be at most %d characters", maxDescription)
	}
	if utf8.RuneCountInString(p.ButtonLabel) > maxButtonLabel {
		return fmt.Errorf("button_label must be at most %d characters", maxButtonLabel)
	}
	for _, r := range p.StaffRoles {
		if r == "" {
			return errors.New("staff_roles must not contain empty IDs")
		}
	}

	if len(p.DropdownOptions) > maxDropdownOptions {
		return fmt.Errorf("dropdown_options must have at most %d entries", maxDropdownOptions)
	}
	seen := make(map[string]struct{}, len(p.DropdownOptions))
	for _, o := range p.DropdownOptions {
		n := utf8.RuneCountInString(o.Label)
		if n == 0 || n > maxOptionLabel {
			return fmt.Errorf("dropdown option labels must be 1 to %d characters", maxOptionLabel)
		}
		if _, ok := seen[o.Label]; ok {
			return fmt.Errorf("dropdown option %q is listed twice", o.Label)
		}
		seen[o.Label] = struct{}{}
	}
	return nil
}
