package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"leadhub/internal/middleware"
	"leadhub/internal/service/comment"
	"leadhub/internal/service/lead"
	"leadhub/internal/service/livesync"
	"leadhub/internal/service/notification"
	"leadhub/internal/service/user"
)

// StreamHandler serves one SSE connection per client. Each connection
// owns a livesync session: page-scope subscriptions for the lead list,
// the user directory and the caller's notifications, plus modal-scope
// subscriptions for one lead's comments and status history when
// ?lead_id= is given. Every event carries the full collection snapshot.
type StreamHandler struct {
	hub             *livesync.Hub
	leadService     lead.Service
	userService     user.Service
	commentService  comment.Service
	notificationSvc notification.Service
}

func NewStreamHandler(
	hub *livesync.Hub,
	leadService lead.Service,
	userService user.Service,
	commentService comment.Service,
	notificationSvc notification.Service,
) *StreamHandler {
	return &StreamHandler{
		hub:             hub,
		leadService:     leadService,
		userService:     userService,
		commentService:  commentService,
		notificationSvc: notificationSvc,
	}
}

type sseEvent struct {
	key  string
	data []byte
}

func (h *StreamHandler) Stream(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var leadID *uuid.UUID
	if raw := c.Query("lead_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid lead ID")
		}
		leadID = &parsed
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	ctx, cancel := context.WithCancel(context.Background())
	session := livesync.NewSession(h.hub)
	events := make(chan sseEvent, 32)

	render := func(key string) livesync.Render {
		return func(v any) {
			data, err := json.Marshal(v)
			if err != nil {
				return
			}
			select {
			case events <- sseEvent{key: key, data: data}:
			default: // drop if slow; the next signal resends the snapshot
			}
		}
	}

	pageSubs := []livesync.Subscription{
		{
			Key:    livesync.KeyLeads,
			Fetch:  func(ctx context.Context) (any, error) { return h.leadService.List(ctx) },
			Render: render(livesync.KeyLeads),
		},
		{
			Key:    livesync.KeyUsers,
			Fetch:  func(ctx context.Context) (any, error) { return h.userService.ListActive(ctx) },
			Render: render(livesync.KeyUsers),
		},
		{
			Key:    livesync.KeyNotifications(userID.String()),
			Fetch:  func(ctx context.Context) (any, error) { return h.notificationSvc.List(ctx, userID) },
			Render: render("notifications"),
		},
	}
	if err := session.SwitchPage(ctx, pageSubs); err != nil {
		cancel()
		session.Close()
		return err
	}

	if leadID != nil {
		id := *leadID
		modalSubs := []livesync.Subscription{
			{
				Key:    livesync.KeyComments(id.String()),
				Fetch:  func(ctx context.Context) (any, error) { return h.commentService.ListByLead(ctx, id) },
				Render: render("comments"),
			},
			{
				Key:    livesync.KeyStatusHistory(id.String()),
				Fetch:  func(ctx context.Context) (any, error) { return h.leadService.StatusHistory(ctx, id) },
				Render: render("statusHistory"),
			},
		}
		if err := session.OpenModal(ctx, modalSubs); err != nil {
			cancel()
			session.Close()
			return err
		}
	}

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer session.Close()

		fmt.Fprint(w, ": connected\n\n")
		if w.Flush() != nil {
			return
		}

		// Heartbeat keeps the connection alive through proxies.
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				if w.Flush() != nil {
					return
				}
			case ev := <-events:
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.key, ev.data)
				if w.Flush() != nil {
					return
				}
			}
		}
	}))

	return nil
}
