package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Dispatcher delivers threshold-crossing alerts. The engine decides when to
// fire; the dispatcher decides how the alert is rendered and delivered.
type Dispatcher interface {
	Dispatch(level AlertLevel, title, body string)
}

// AlertConfig defines alert destinations.
type AlertConfig struct {
	Webhook string
	Command string
}

// Notifier is the default Dispatcher: it logs every alert and optionally
// forwards it to a webhook and/or a shell command hook.
type Notifier struct {
	cfg    AlertConfig
	client *http.Client
}

// NewNotifier creates a notifier.
func NewNotifier(cfg AlertConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Dispatch sends the alert asynchronously; delivery failures are logged,
// never propagated.
func (n *Notifier) Dispatch(level AlertLevel, title, body string) {
	log.Printf("memsweep: alert [%s] %s: %s", level, title, body)
	if n.cfg.Webhook == "" && n.cfg.Command == "" {
		return
	}
	go n.deliver(level, title, body)
}

// validateWebhookURL requires http/https and rejects loopback and cloud
// metadata hosts.
func validateWebhookURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("webhook URL must use http or https scheme, got %q", scheme)
	}
	host := strings.ToLower(u.Hostname())
	blocked := []string{"169.254.169.254", "metadata.google.internal", "localhost", "127.0.0.1", "::1", "[::1]"}
	for _, b := range blocked {
		if host == b {
			return fmt.Errorf("webhook URL host %q is blocked", host)
		}
	}
	return nil
}

func (n *Notifier) deliver(level AlertLevel, title, body string) {
	payload := map[string]string{
		"level": level.String(),
		"title": title,
		"body":  body,
		"ts":    time.Now().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("memsweep: alert marshal error: %v", err)
		return
	}

	if n.cfg.Webhook != "" {
		if err := validateWebhookURL(n.cfg.Webhook); err != nil {
			log.Printf("memsweep: webhook blocked: %v", err)
		} else {
			req, err := http.NewRequest("POST", n.cfg.Webhook, bytes.NewReader(data))
			if err == nil {
				req.Header.Set("Content-Type", "application/json")
				resp, err := n.client.Do(req)
				if err == nil {
					_, _ = io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
			}
		}
	}

	if n.cfg.Command != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cmd := exec.CommandContext(ctx, "sh", "-c", n.cfg.Command)
		cmd.Env = append(os.Environ(),
			"MEMSWEEP_LEVEL="+level.String(),
			"MEMSWEEP_TITLE="+title,
			"MEMSWEEP_BODY="+body,
		)
		_ = cmd.Run()
	}
}
