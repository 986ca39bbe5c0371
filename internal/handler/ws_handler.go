package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/repository"
	"github.com/stemsi/rollcall/internal/service"
	ws "github.com/stemsi/rollcall/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams roster state to views and accepts marking commands.
type WSHandler struct {
	hub               *ws.Hub
	rosterService     *service.RosterService
	attendanceService *service.AttendanceService
	log               zerolog.Logger
	upgrader          websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *ws.Hub, rosterService *service.RosterService, attendanceService *service.AttendanceService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:               hub,
		rosterService:     rosterService,
		attendanceService: attendanceService,
		log:               log.With().Str("component", "ws_handler").Logger(),
		upgrader:          buildUpgrader(allowedOrigins),
	}
}

// RosterStream godoc
// WS /ws/v1/roster/stream
// Sends a snapshot, then every change. Clients may send marking actions
// and subscribe to a live text report.
func (h *WSHandler) RosterStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// Register before taking the snapshot so no change is missed; changes
	// queued meanwhile carry full entry state and are safe to re-apply.
	client := h.hub.Register()
	defer h.hub.Unregister(client)

	entries, summary := h.rosterService.Roster()
	if err := ws.WriteTyped(conn, ws.RosterEvent{Event: ws.EventSnapshot, Entries: entries, Summary: summary}); err != nil {
		return
	}

	ws.KeepAlive(conn)
	go ws.WritePump(conn, client)

	wsLog := h.log.With().Str("client_id", client.ID).Logger()
	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}
		h.dispatch(client, &msg)
	}
}

func (h *WSHandler) dispatch(client *ws.Client, msg *ws.RequestPayload) {
	switch msg.Action {
	case ws.ActionPing:
		h.hub.SendTo(client, ws.PongResponse{Event: ws.EventPong})

	case ws.ActionToggle:
		if msg.Index == nil {
			h.sendError(client, "index is required")
			return
		}
		if _, _, err := h.attendanceService.Toggle(*msg.Index); err != nil {
			h.sendMarkingError(client, err)
		}

	case ws.ActionSetMark:
		mark, err := model.ParseMark(msg.Mark)
		if err != nil || msg.Index == nil {
			h.sendError(client, "index and mark (present or absent) are required")
			return
		}
		if _, _, err := h.attendanceService.SetMark(*msg.Index, mark); err != nil {
			h.sendMarkingError(client, err)
		}

	case ws.ActionBulk:
		mark, err := model.ParseMark(msg.Mark)
		if err != nil {
			h.sendError(client, "mark must be present, absent or unmarked")
			return
		}
		if _, err := h.attendanceService.SetAll(mark); err != nil {
			h.sendMarkingError(client, err)
		}

	case ws.ActionWatchReport:
		cfg := model.DefaultProjection()
		if msg.Config != nil {
			cfg = *msg.Config
		}
		h.hub.WatchReport(client, cfg)

	case ws.ActionUnwatchReport:
		h.hub.UnwatchReport(client)

	default:
		h.sendError(client, "unknown action")
	}
}

func (h *WSHandler) sendMarkingError(client *ws.Client, err error) {
	switch {
	case errors.Is(err, repository.ErrIndexOutOfRange):
		h.sendError(client, "no roster entry at that index")
	case errors.Is(err, service.ErrInvalidMark):
		h.sendError(client, "mark must be present or absent")
	default:
		h.log.Error().Err(err).Msg("Marking failed")
		h.sendError(client, "internal error")
	}
}

func (h *WSHandler) sendError(client *ws.Client, msg string) {
	h.hub.SendTo(client, ws.ErrorResponse{Event: ws.EventError, Error: msg})
}
