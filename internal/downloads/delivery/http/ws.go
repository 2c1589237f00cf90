package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// wsSubscriber writes progress events to one websocket connection.
type wsSubscriber struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func newWSSubscriber(conn *websocket.Conn) *wsSubscriber {
	return &wsSubscriber{conn: conn, done: make(chan struct{})}
}

func (s *wsSubscriber) Send(event *models.ProgressEvent) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(event)
}

func (s *wsSubscriber) ping() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (s *wsSubscriber) closeWith(code int, reason string) {
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
		s.writeMu.Unlock()
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *wsSubscriber) Close() error {
	s.closeWith(websocket.CloseNormalClosure, "")
	return nil
}

func (h *downloadsHandlers) ProgressStream() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := h.authorizedVideo(c)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			h.logger.Warnf("ProgressStream - Upgrade error: %v", err)
			return nil
		}
		sub := newWSSubscriber(conn)

		if snapshot, err := h.downloadsUC.GetProgress(c.Request().Context(), videoID); err != nil {
			h.logger.Errorf("ProgressStream - GetProgress error: video %d: %v", videoID, err)
			sub.closeWith(websocket.CloseInternalServerErr, "progress unavailable")
			return nil
		} else if err := sub.Send(&models.ProgressEvent{
			Progress: snapshot.Progress,
			Status:   snapshot.Status,
			Title:    snapshot.Title,
			Message:  snapshot.Message,
		}); err != nil {
			sub.closeWith(websocket.CloseInternalServerErr, "write failed")
			return nil
		}

		h.broadcaster.Subscribe(videoID, sub)
		defer h.broadcaster.Unsubscribe(videoID, sub)

		go h.keepAlive(sub)
		h.drain(sub)
		return nil
	}
}

// drain consumes client frames until the peer goes away or the subscriber is closed.
func (h *downloadsHandlers) drain(sub *wsSubscriber) {
	defer sub.Close()
	sub.conn.SetReadLimit(512)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debugf("ProgressStream - read error: %v", err)
			}
			return
		}
	}
}

func (h *downloadsHandlers) keepAlive(sub *wsSubscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-sub.done:
			return
		case <-ticker.C:
			if err := sub.ping(); err != nil {
				sub.closeWith(websocket.CloseInternalServerErr, "ping failed")
				return
			}
		}
	}
}

func originChecker(allowOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range allowOrigins {
			if allowed == "*" || strings.EqualFold(allowed, origin) {
				return true
			}
		}
		return false
	}
}
