package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/logger"
)

type messageRequest struct {
	Text string `json:"text"`
}

func (s *Server) getThread(c *gin.Context) {
	if s.ports.Chat == nil {
		unavailable(c, "chat")
		return
	}
	thread, err := s.ports.Chat.Thread(c.Request.Context(), c.Param("session"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": thread})
}

func (s *Server) customerMessage(c *gin.Context) {
	s.sendMessage(c, domain.SenderCustomer)
}

func (s *Server) adminReply(c *gin.Context) {
	s.sendMessage(c, domain.SenderAdmin)
}

func (s *Server) sendMessage(c *gin.Context, sender domain.Sender) {
	if s.ports.Chat == nil {
		unavailable(c, "chat")
		return
	}
	var input messageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	m, err := s.ports.Chat.Send(c.Request.Context(), c.Param("session"), sender, input.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// streamThread pushes thread snapshots as server-sent "thread" events until
// the client disconnects.
func (s *Server) streamThread(c *gin.Context) {
	if s.ports.Chat == nil {
		unavailable(c, "chat")
		return
	}
	ctx := c.Request.Context()
	session := c.Param("session")
	snapshots, err := s.ports.Chat.Watch(ctx, session)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case thread, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("thread", thread)
			return true
		}
	})
	logger.Debug("thread stream %s closed", session)
}

func (s *Server) listThreads(c *gin.Context) {
	if s.ports.Chat == nil {
		unavailable(c, "chat")
		return
	}
	threads, err := s.ports.Chat.Threads(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": threads})
}
