package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/zenith-portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultResendEndpoint = "https://api.resend.com/emails"

// Email is one message handed to the delivery provider.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
	Tags    map[string]string
}

// EmailSender delivers an email and returns the provider's message id.
type EmailSender interface {
	SendEmail(ctx context.Context, email Email) (string, error)
}

// resendEmailRequest is the Resend API payload
type resendEmailRequest struct {
	From    string      `json:"from"`
	To      []string    `json:"to"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html,omitempty"`
	Text    string      `json:"text,omitempty"`
	ReplyTo string      `json:"reply_to,omitempty"`
	Tags    []resendTag `json:"tags,omitempty"`
}

type resendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type resendEmailResponse struct {
	ID string `json:"id"`
}

type resendErrorResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

type ResendConfig struct {
	APIKey string
	// Endpoint defaults to DefaultResendEndpoint.
	Endpoint   string
	HTTPClient *http.Client
}

// ResendMailer sends email through the Resend HTTP API. A single attempt per call, no retries.
type ResendMailer struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewResendMailer(cfg ResendConfig) *ResendMailer {
	m := &ResendMailer{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		httpClient: cfg.HTTPClient,
		logger:     log.With().Str("component", "resendMailer").Logger(),
	}
	if m.endpoint == "" {
		m.endpoint = DefaultResendEndpoint
	}
	if m.httpClient == nil {
		m.httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return m
}

// SendEmail posts email to Resend. A non-200 answer becomes *errs.EmailProviderError.
func (m *ResendMailer) SendEmail(ctx context.Context, email Email) (string, error) {
	if m.apiKey == "" {
		return "", errs.NewConfigMissingError("RESEND_API_KEY")
	}
	if email.From == "" {
		return "", errs.NewConfigMissingError("RESEND_FROM_EMAIL")
	}
	if len(email.To) == 0 {
		return "", errs.NewConfigMissingError("CONTACT_EMAIL")
	}

	payload := resendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}
	for name, value := range email.Tags {
		payload.Tags = append(payload.Tags, resendTag{Name: name, Value: value})
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ResendMailer.SendEmail: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("ResendMailer.SendEmail: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ResendMailer.SendEmail: %w: %w", errs.ErrEmailProvider, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ResendMailer.SendEmail: read response: %w: %w", errs.ErrEmailProvider, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp resendErrorResponse
		message := string(bodyBytes)
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			message = errorResp.Message
		}
		return "", &errs.EmailProviderError{StatusCode: resp.StatusCode, Message: message}
	}

	var emailResponse resendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		m.logger.Warn().Err(err).Msg("failed to parse Resend response, but email was accepted")
		return "", nil
	}

	m.logger.Info().Str("emailId", emailResponse.ID).Msg("sent email via Resend")
	return emailResponse.ID, nil
}
