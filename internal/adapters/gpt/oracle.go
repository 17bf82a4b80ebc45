package gpt

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"hoteai/internal/adapters/observability"
	"hoteai/internal/domain"
)

const (
	DefaultModel = openai.GPT4oMini

	// Cold sampling: the rubric is a judgement, not prose, and low
	// temperature keeps repeated judgements stable.
	temperature = 0.2
)

// Oracle scores hotel replies through the OpenAI chat API. It satisfies
// domain.Oracle.
type Oracle struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func New(apiKey, model string, timeout time.Duration) (*Oracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Oracle{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}, nil
}

// Judge sends the rubric prompt for one candidate and parses the answer.
// Transport errors come back as-is; malformed answers come back as a
// *ParseError carrying the raw text for the analysis-failure log.
func (o *Oracle) Judge(ctx context.Context, c domain.ScoringCandidate) (domain.Rubric, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an assistant that judges the quality of hotel replies to guest reviews.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(c),
			},
		},
		Temperature: temperature,
	})
	if err != nil {
		observability.ObserveExternal("openai", "chat", 0, time.Since(start))
		return domain.Rubric{}, fmt.Errorf("oracle call: %w", err)
	}
	observability.ObserveExternal("openai", "chat", 200, time.Since(start))

	if len(resp.Choices) == 0 {
		return domain.Rubric{}, &ParseError{Raw: "", Reason: "no choices in completion"}
	}
	return ParseRubric(resp.Choices[0].Message.Content)
}

// BuildPrompt renders the rubric-instructing prompt for one candidate.
func BuildPrompt(c domain.ScoringCandidate) string {
	lang := "English"
	if c.Lang == "he" {
		lang = "Hebrew"
	}
	return fmt.Sprintf(`You are scoring a hotel's reply to a guest review.
The guest wrote a review in %s:
"""
%s
"""

The hotel replied:
"""
%s
"""

Judge the reply on each criterion and return ONLY a JSON object with exactly
these 12 boolean fields:
{
  "professional_tone": true if the reply keeps a professional tone,
  "language_appropriate": true if the reply language fits the guest's language (a Hebrew review may be answered in Hebrew; an English review needs English, optionally alongside Hebrew),
  "addressed_positive": true if the reply acknowledges what the guest liked,
  "addressed_negative": true if the reply addresses the guest's complaints,
  "named_guest": true if the reply addresses the guest by name,
  "named_hotelier": true if the reply is signed with the hotel or a representative's name,
  "kind": true if the reply is kind and empathetic,
  "concise": true if the reply is concise and to the point,
  "grateful": true if the reply thanks the guest for the feedback,
  "invites_return": true if the reply invites the guest to return,
  "correct_syntax": true if the reply is free of spelling and grammar mistakes,
  "personal": true if the reply is personal rather than a generic template
}

IMPORTANT: Your response MUST be a valid JSON object and nothing else. Do not
include any explanations or text outside of the JSON.`,
		lang, c.ReviewText(), c.HotelReply)
}

// stripFences removes a markdown code-fence wrapper if the model added one.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
