package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
	"github.com/tandemhr/ess-backend-go/internal/pkg/jwt"
	"github.com/tandemhr/ess-backend-go/internal/pkg/sse"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
	jwtService          jwt.Service
	hub                 *sse.Hub
}

func NewNotificationHandler(notificationService notification.Service, jwtService jwt.Service, hub *sse.Hub) NotificationHandler {
	return &NotificationHandlerImpl{
		notificationService: notificationService,
		jwtService:          jwtService,
		hub:                 hub,
	}
}

// List implements NotificationHandler.
func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	limit, offset := limitOffset(r)
	notifications, err := h.notificationService.List(r.Context(), p.UserID, limit, offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notifications)
}

// UnreadCount implements NotificationHandler.
func (h *NotificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(r.Context(), p.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notification.UnreadCountResponse{Count: count})
}

// MarkRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), chi.URLParam(r, "id"), p.UserID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// MarkAllRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), p.UserID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}

// GetSSEToken issues a short-lived token for the EventSource handshake.
func (h *NotificationHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(p.UserID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}
	response.Success(w, notification.SSETokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream handles the SSE connection for real-time notifications. The token
// rides in the query string because EventSource cannot set headers.
func (h *NotificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
