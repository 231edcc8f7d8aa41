package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/classmart/classmart-backend/pkg/config"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/logger"
)

const sendgridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendGrid posts messages to the SendGrid v3 REST API.
type SendGrid struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
	logg     *logger.Logger
}

// NewSendGrid builds a SendGrid-backed sender from the mail configuration.
func NewSendGrid(cfg config.MailConfig, logg *logger.Logger) (*SendGrid, error) {
	if cfg.SendgridAPIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is required")
	}
	if cfg.DefaultFrom == "" {
		return nil, fmt.Errorf("default from address is required")
	}
	return &SendGrid{
		apiKey:   cfg.SendgridAPIKey,
		from:     cfg.DefaultFrom,
		endpoint: sendgridEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logg:     logg,
	}, nil
}

type sgAddress struct {
	Email string `json:"email"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

// Send delivers a plain-text message to a single recipient.
func (s *SendGrid) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient is required")
	}

	payload := sgPayload{
		Personalizations: []sgPersonalization{{To: []sgAddress{{Email: to}}}},
		From:             sgAddress{Email: s.from},
		Subject:          subject,
		Content:          []sgContent{{Type: "text/plain", Value: body}},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode mail payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(raw))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build mail request")
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send mail")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return pkgerrors.New(pkgerrors.CodeDependency, "mail provider rejected the message").
			WithDetails(map[string]any{"status": resp.StatusCode, "body": string(detail)})
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"to": to, "subject": subject})
		s.logg.Info(logCtx, "mail.sent")
	}
	return nil
}

// Noop satisfies Sender when mail delivery is disabled; it logs and succeeds.
type Noop struct {
	logg *logger.Logger
}

// NewNoop builds a sender that drops messages.
func NewNoop(logg *logger.Logger) *Noop {
	return &Noop{logg: logg}
}

func (n *Noop) Send(ctx context.Context, to, subject, body string) error {
	if n.logg != nil {
		logCtx := n.logg.WithFields(ctx, map[string]any{"to": to, "subject": subject})
		n.logg.Info(logCtx, "mail.skipped")
	}
	return nil
}
