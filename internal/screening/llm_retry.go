package screening

import (
	"context"
	"errors"
	"log"
	"net"
	"strings"
	"time"

	"screener-backend/internal/llm"
)

const llmRetryBaseDelay = 300 * time.Millisecond

type retryingLLM struct {
	base      llm.Client
	requestID string
}

func newRetryingLLM(base llm.Client, requestID string) llm.Client {
	if base == nil {
		return nil
	}
	return retryingLLM{
		base:      base,
		requestID: requestID,
	}
}

func (r retryingLLM) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := r.base.Complete(ctx, prompt)
	if err == nil || !shouldRetryLLM(err) {
		return resp, err
	}

	delay := llmRetryBaseDelay
	log.Printf("llm retry attempt=1 request_id=%s error=%s", r.requestID, sanitizeError(err))
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.Complete(ctx, prompt)
}

func shouldRetryLLM(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "groq") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

// sanitizeError flattens an error message to a single bounded line for logs.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
