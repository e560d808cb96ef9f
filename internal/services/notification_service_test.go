package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/models"
)

func TestNotificationService_FansOut(t *testing.T) {
	svc := NewNotificationService(config.Config{
		NotifyURLs:    []string{"generic://a", "generic://b"},
		PublicBaseURL: "https://sites.example.com",
	})
	var mu sync.Mutex
	sent := map[string]string{}
	svc.send = func(url, message string) error {
		mu.Lock()
		defer mu.Unlock()
		sent[url] = message
		if url == "generic://b" {
			return errors.New("unreachable")
		}
		return nil
	}

	svc.PreviewSaved(&models.PreviewRecord{Key: "acme", Template: "dj-template"})
	svc.Wait()

	assert.Len(t, sent, 2)
	assert.Contains(t, sent["generic://a"], "https://sites.example.com/preview/acme")
	assert.Contains(t, sent["generic://a"], "dj-template")
}

func TestNotificationService_DisabledIsNoop(t *testing.T) {
	svc := NewNotificationService(config.Config{})
	called := false
	svc.send = func(string, string) error {
		called = true
		return nil
	}

	svc.PreviewSaved(&models.PreviewRecord{Key: "acme"})
	svc.Wait()
	assert.False(t, svc.Enabled())
	assert.False(t, called)
}
