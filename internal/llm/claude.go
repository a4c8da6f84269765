package llm

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	claudeDefaultModel = "claude-sonnet-4-5-20250929"
	claudeMaxTokens    = 1024
	claudeRetryMax     = 3
	claudeRetryBase    = time.Second
)

// ClaudeProvider answers prompts through the Anthropic messages API.
type ClaudeProvider struct {
	apiKey  string
	baseURL string
	model   string
}

// NewClaudeProvider creates a Claude-backed provider. An empty apiKey falls
// back to ANTHROPIC_API_KEY / ANTHROPIC_AUTH_TOKEN at call time.
func NewClaudeProvider(apiKey, baseURL, model string) *ClaudeProvider {
	m := strings.TrimSpace(model)
	if m == "" {
		m = claudeDefaultModel
	}
	return &ClaudeProvider{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		model:   m,
	}
}

func (p *ClaudeProvider) Name() string { return "claude" }

// Answer submits the prompt as a single user message and returns the
// concatenated text blocks of the reply. Server-side failures retry with
// exponential backoff up to a small bound.
func (p *ClaudeProvider) Answer(ctx context.Context, prompt string) (string, error) {
	if p == nil {
		return "", errors.New("llm: claude: nil provider")
	}
	if ctx == nil {
		return "", errors.New("llm: claude: nil context")
	}

	key := p.apiKey
	authToken := ""
	if key == "" {
		key = strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	}
	if key == "" {
		authToken = strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN"))
	}
	if key == "" && authToken == "" {
		return "", errors.New("llm: claude: missing api key")
	}

	opts := make([]option.RequestOption, 0, 3)
	if key != "" {
		opts = append(opts, option.WithAPIKey(key))
	} else {
		opts = append(opts, option.WithAuthToken(authToken))
	}
	if p.baseURL != "" {
		opts = append(opts, option.WithBaseURL(p.baseURL))
	}
	opts = append(opts, option.WithMaxRetries(0))
	client := anthropic.NewClient(opts...)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	for attempt := 0; ; attempt++ {
		msg, err := client.Messages.New(ctx, params)
		if err != nil {
			if !claudeShouldRetry(err) || attempt >= claudeRetryMax {
				return "", err
			}
			if err := sleepWithContext(ctx, claudeRetryBase*time.Duration(1<<attempt)); err != nil {
				return "", err
			}
			continue
		}

		var sb strings.Builder
		for _, block := range msg.Content {
			if block.Type == "text" {
				sb.WriteString(block.AsText().Text)
			}
		}
		return sb.String(), nil
	}
}

func claudeShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var sdkErr *anthropic.Error
	if errors.As(err, &sdkErr) {
		return sdkErr.StatusCode == 429 || (sdkErr.StatusCode >= 500 && sdkErr.StatusCode <= 599)
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
