package notifyservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/febriandika/postfolio/internal/common"
)

func NewNotifyService(mb common.MessageConsumer, host, username, password, sender, recipient string, port int, logger *slog.Logger) *NotifyService {
	ctx, cancel := context.WithCancel(context.Background())
	return &NotifyService{
		mb:        mb,
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		recipient: recipient,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SendPostPublishedEmail consumes post.created events and emails the
// configured recipient about each new post. Send failures are retried with
// jittered exponential backoff before the message is given up on.
func (s *NotifyService) SendPostPublishedEmail() {
	msgs, err := s.mb.Consume(common.PostCreatedKey, common.PostExchange, common.PostCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data struct {
					ID       int    `json:"id"`
					Title    string `json:"title"`
					Category string `json:"category"`
				}

				err := json.Unmarshal(msg.Body, &data)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					continue
				}

				payload := struct {
					Title    string
					Category string
					URL      string
				}{
					Title:    data.Title,
					Category: data.Category,
					URL:      fmt.Sprintf("/blog/%d", data.ID),
				}

				const maxRetries = 5
				const baseDelay = 500 * time.Millisecond

				var attempt int
				for attempt = 0; attempt < maxRetries; attempt++ {
					err = s.m.send(s.recipient, payload, "post_published.html")
					if err == nil {
						s.logger.Info("post notification sent", slog.String("title", data.Title))
						msg.Ack(false)
						break
					}

					delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
					s.logger.Info("delaying post notification", slog.String("title", data.Title), slog.Int("attempt", attempt), slog.Duration("delay", delay))
					time.Sleep(delay)
				}

				if attempt == maxRetries {
					s.logger.Error("could not send post notification", slog.String("title", data.Title))
					msg.Ack(false)
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping SendPostPublishedEmail due to context cancellation")
				return
			}
		}
	}()
}

// Close stops the consumer goroutine.
func (s *NotifyService) Close() {
	s.cancel()
}
