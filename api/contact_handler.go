package api

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"github.com/rpupo63/zenith-portfolio/errs"
	"github.com/rpupo63/zenith-portfolio/metrics"
	"github.com/rpupo63/zenith-portfolio/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	maxContactBody        = 64 * 1024
	contactSuccessMessage = "Message sent successfully! I'll get back to you within 24 hours."
)

// emailPattern rejects everything a browser's \s matches, which is wider than RE2's \s.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	sender    services.EmailSender
	emailer   *services.ContactEmailer
	metrics   *metrics.Metrics
}

func newContactHandler(sender services.EmailSender, emailer *services.ContactEmailer, m *metrics.Metrics) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()
	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		sender:    sender,
		emailer:   emailer,
		metrics:   m,
	}
}

// ValidateContact checks presence of every field, then the email shape.
func ValidateContact(req ContactRequest) error {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return errs.NewMissingRequiredFieldError(firstMissing(req), "All fields are required")
	}
	if !emailPattern.MatchString(req.Email) {
		return errs.NewInvalidFieldError("email", "Invalid email address")
	}
	return nil
}

func firstMissing(req ContactRequest) string {
	switch {
	case req.Name == "":
		return "name"
	case req.Email == "":
		return "email"
	default:
		return "message"
	}
}

func (h contactHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxContactBody)).Decode(&req); err != nil {
			h.logger.Warn().Err(err).Msg("undecodable contact payload")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Internal server error", err))
			return
		}

		if err := ValidateContact(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		submissionID := uuid.NewString()
		email := h.emailer.Compose(services.ContactSubmission{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		}, submissionID)

		messageID, err := h.sender.SendEmail(r.Context(), email)
		h.metrics.EmailSent(err == nil)
		if err != nil {
			h.logger.Error().Err(err).Str("submissionID", submissionID).Msg("failed to send contact email")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Failed to send email", err))
			return
		}

		h.logger.Info().
			Str("submissionID", submissionID).
			Str("messageID", messageID).
			Msg("contact email sent")
		h.responder.WriteJSON(w, ContactResponse{Success: true, Message: contactSuccessMessage})
	}
}
