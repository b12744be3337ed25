package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/zenith-portfolio/cache"
	"github.com/rpupo63/zenith-portfolio/content"
	"github.com/rpupo63/zenith-portfolio/errs"
	"github.com/rpupo63/zenith-portfolio/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxWebhookBody = 1024 * 1024

// revalidatedPaths are dropped on every accepted webhook regardless of document type.
var revalidatedPaths = []string{"/", "/projects"}

type revalidateHandler struct {
	responder   Responder
	logger      zerolog.Logger
	secret      string
	revalidator cache.Revalidator
	metrics     *metrics.Metrics
	now         func() time.Time
}

func newRevalidateHandler(secret string, revalidator cache.Revalidator, m *metrics.Metrics) revalidateHandler {
	logger := log.With().Str("handlerName", "revalidateHandler").Logger()
	return revalidateHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		secret:      secret,
		revalidator: revalidator,
		metrics:     m,
		now:         time.Now,
	}
}

// checkSecret fails closed: an unconfigured secret rejects every request.
func (h revalidateHandler) checkSecret(got string) error {
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		return errs.NewSecretMismatchError()
	}
	return nil
}

func (h revalidateHandler) revalidate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.checkSecret(r.URL.Query().Get("secret")); err != nil {
			h.logger.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("revalidate rejected")
			h.responder.WriteMessage(w, err)
			return
		}

		docType := webhookType(r.Body)
		paths, err := h.apply(r.Context(), docType)
		h.metrics.Revalidated(err == nil)
		if err != nil {
			h.logger.Error().Err(err).Str("contentType", docType).Msg("revalidation failed")
			h.responder.WriteStatusJSON(w, http.StatusInternalServerError, RevalidateFailure{
				Success: false,
				Message: "Error revalidating",
			})
			return
		}

		h.logger.Info().Strs("paths", paths).Str("contentType", docType).Msg("revalidated")
		h.responder.WriteJSON(w, RevalidateResponse{
			Success:     true,
			Revalidated: true,
			Now:         h.now().UnixMilli(),
			Paths:       paths,
			ContentType: docType,
		})
	}
}

// webhookType reads _type from the body. Anything unreadable is treated as an empty payload.
func webhookType(body io.Reader) string {
	var payload map[string]any
	if err := json.NewDecoder(io.LimitReader(body, maxWebhookBody)).Decode(&payload); err != nil {
		return ""
	}
	docType, _ := payload["_type"].(string)
	return docType
}

// apply drops the fixed paths and, for known document types, every page tagged with that type.
func (h revalidateHandler) apply(ctx context.Context, docType string) (paths []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("revalidate panicked: %v", p)
		}
	}()

	paths = dedupe(revalidatedPaths)
	for _, path := range paths {
		if err := h.revalidator.RevalidatePath(ctx, path); err != nil {
			return nil, fmt.Errorf("revalidate path %s: %w", path, err)
		}
	}

	if tag, ok := content.TagForType(docType); ok {
		if err := h.revalidator.RevalidateTag(ctx, tag); err != nil {
			return nil, fmt.Errorf("revalidate tag %s: %w", tag, err)
		}
	}
	return paths, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
