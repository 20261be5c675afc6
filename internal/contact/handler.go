// Package contact relays visitor messages from the terminal's compose flow
// to Slack. The server half is a gin route; the client half is what the
// terminal surface calls.
package contact

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stoneinhat/dotfield/internal/storage"
)

const Path = "/api/contact"

// Recorder keeps an audit trail of relayed messages.
type Recorder interface {
	Record(ctx context.Context, m storage.Message) (int64, error)
}

type request struct {
	Message string `json:"message"`
}

type handler struct {
	notifier Notifier
	recorder Recorder
}

// Register mounts POST /api/contact on r. recorder may be nil.
func Register(r gin.IRouter, n Notifier, rec Recorder) {
	h := &handler{notifier: n, recorder: rec}
	r.POST(Path, h.post)
}

// NewRouter builds a gin engine with request logging and the contact route.
func NewRouter(n Notifier, rec Recorder) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	Register(r, n, rec)
	return r
}

func (h *handler) post(c *gin.Context) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("contact: bad request body: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred."})
		return
	}

	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		h.record(c, req.Message, storage.StatusRejected, ErrEmptyMessage)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if h.notifier == nil {
		h.fail(c, msg, ErrNotConfigured)
		return
	}
	if err := h.notifier.Notify(c.Request.Context(), msg); err != nil {
		h.fail(c, msg, err)
		return
	}

	h.record(c, msg, storage.StatusSent, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully!"})
}

func (h *handler) fail(c *gin.Context, msg string, err error) {
	h.record(c, msg, storage.StatusFailed, err)
	if errors.Is(err, ErrNotConfigured) {
		log.Printf("contact: SLACK_WEBHOOK_URL is not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error."})
		return
	}
	log.Printf("contact: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message."})
}

func (h *handler) record(c *gin.Context, body string, status storage.Status, cause error) {
	if h.recorder == nil {
		return
	}
	m := storage.Message{Body: body, Status: status, ReceivedAt: time.Now()}
	if cause != nil {
		m.Detail = cause.Error()
	}
	if _, err := h.recorder.Record(c.Request.Context(), m); err != nil {
		log.Printf("contact: %v", err)
	}
}
