package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Provider is the opaque text-generation boundary. Implementations may
// return arbitrary plain text, including replies without any parseable
// structure; callers must tolerate that.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}

var ErrNoJSON = errors.New("llm: reply contains no JSON object")

// CompleteJSON asks the provider for a reply and decodes the first
// object-looking span into dst. Models wrap JSON in prose or markdown
// fences, so the reply is scanned for the outermost braces here, at the
// adapter boundary; any failure is the single trigger for the caller's
// fallback path.
func CompleteJSON(ctx context.Context, p Provider, prompt string, dst any) error {
	reply, err := p.Complete(ctx, prompt)
	if err != nil {
		return err
	}

	span, ok := extractObject(reply)
	if !ok {
		return ErrNoJSON
	}
	return json.Unmarshal([]byte(span), dst)
}

func extractObject(reply string) (string, bool) {
	reply = stripFences(reply)
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return reply[start : end+1], true
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimLeft(s, "\r\n")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
