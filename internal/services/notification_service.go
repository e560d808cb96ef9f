package services

import (
	"fmt"
	"sync"

	"github.com/containrrr/shoutrrr"
	"github.com/sirupsen/logrus"

	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/models"
	"github.com/shineplatform/sitegen/internal/util"
)

// Notifier is told about preview writes. Implementations must not block.
type Notifier interface {
	PreviewSaved(rec *models.PreviewRecord)
}

// NotificationService fans preview events out to shoutrrr URLs.
type NotificationService struct {
	urls    []string
	baseURL string
	send    func(url, message string) error
	wg      sync.WaitGroup
}

// NewNotificationService returns a service posting to cfg.NotifyURLs. With no
// URLs configured every call is a no-op.
func NewNotificationService(cfg config.Config) *NotificationService {
	return &NotificationService{
		urls:    cfg.NotifyURLs,
		baseURL: cfg.PublicBaseURL,
		send: func(url, message string) error {
			return shoutrrr.Send(url, message)
		},
	}
}

// Enabled reports whether any destination is configured.
func (s *NotificationService) Enabled() bool {
	return len(s.urls) > 0
}

// PreviewSaved sends one message per destination in the background.
func (s *NotificationService) PreviewSaved(rec *models.PreviewRecord) {
	if !s.Enabled() {
		return
	}
	msg := fmt.Sprintf("Preview saved\n\n%s (%s)\n%s%s",
		rec.Key, rec.Template, s.baseURL, models.PreviewURL(rec.Key))

	for i, url := range s.urls {
		s.wg.Add(1)
		go func(idx int, u string) {
			defer s.wg.Done()
			if err := s.send(u, msg); err != nil {
				// URLs embed credentials, so only the index is logged.
				logger.WithFields(logrus.Fields{
					"destination": idx,
					"key":         util.SanitizeForLog(rec.Key),
					"error":       err,
				}).Warn("failed to send preview notification")
			}
		}(i, url)
	}
}

// Wait blocks until in-flight notifications finish. Used on shutdown.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}
