package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const sendPath = "/api/v1.0/email/send"

var ErrNotConfigured = errors.New("contact: email service is not configured")

// APIError is a non-2xx answer from the email service.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("email api returned %d: %s", e.Status, e.Body)
}

// Options configure a Client.
type Options struct {
	BaseURL           string
	ServiceID         string
	TemplateOwner     string
	TemplateAutoReply string
	PublicKey         string
	PrivateKey        string
	Timeout           time.Duration
	HTTPClient        *http.Client
	Logger            *zap.Logger
}

// Client sends contact messages through EmailJS.
type Client struct {
	opts Options
	http *http.Client
	log  *zap.Logger
}

func NewClient(opts Options) *Client {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{opts: opts, http: hc, log: log}
}

// Configured reports whether the service, owner template and key are set.
func (c *Client) Configured() bool {
	return c.opts.BaseURL != "" && c.opts.ServiceID != "" &&
		c.opts.TemplateOwner != "" && c.opts.PublicKey != ""
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send validates m, mails the owner and then, when an auto-reply template is
// configured, mails the sender. The auto-reply is only attempted after the
// owner message was accepted. There is no retry.
func (c *Client) Send(ctx context.Context, m Message) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return err
	}
	params := m.TemplateParams()

	if err := c.send(ctx, c.opts.TemplateOwner, params); err != nil {
		return fmt.Errorf("send to owner: %w", err)
	}
	c.log.Info("contact message sent", zap.String("from", m.Email))

	if c.opts.TemplateAutoReply == "" {
		return nil
	}
	if err := c.send(ctx, c.opts.TemplateAutoReply, params); err != nil {
		return fmt.Errorf("send auto-reply: %w", err)
	}
	c.log.Debug("auto-reply sent", zap.String("to", m.Email))
	return nil
}

func (c *Client) send(ctx context.Context, template string, params map[string]string) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:      c.opts.ServiceID,
		TemplateID:     template,
		UserID:         c.opts.PublicKey,
		AccessToken:    c.opts.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", template, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		err := &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
		c.log.Warn("email api error",
			zap.String("template", template),
			zap.Int("status", resp.StatusCode),
			zap.String("body", err.Body))
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
