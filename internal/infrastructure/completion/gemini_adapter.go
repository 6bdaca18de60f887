package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"todo-server/internal/config"
	"todo-server/internal/domain/chat"
	"todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/metrics"
	"todo-server/internal/utils/apperrors"
	"todo-server/internal/utils/functional"
	"todo-server/internal/utils/httpclients"
)

// GeminiAdapter talks to the Gemini generateContent REST API.
type GeminiAdapter struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
	logger  zerolog.Logger
}

var _ chat.Adapter = (*GeminiAdapter)(nil)

func NewGeminiAdapter(cfg *config.Config, logger zerolog.Logger) *GeminiAdapter {
	return &GeminiAdapter{
		client:  httpclients.NewClient("gemini"),
		baseURL: strings.TrimRight(cfg.GeminiBaseURL, "/"),
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		logger:  logger.With().Str("component", "gemini_adapter").Logger(),
	}
}

type geminiPart struct {
	Text             string                  `json:"text,omitempty"`
	FunctionCall     *geminiFunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *geminiFunctionResponse `json:"functionResponse,omitempty"`
}

type geminiFunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

type geminiFunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiFunctionDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFunctionDeclaration `json:"function_declarations"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	Tools             []geminiTool    `json:"tools,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *GeminiAdapter) Complete(ctx context.Context, history []*conversation.Message, tools []chat.ToolDeclaration) (*chat.Decision, error) {
	request := geminiRequest{}
	for _, m := range history {
		if m.Role == conversation.RoleSystem {
			request.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: m.Content}}}
			continue
		}
		request.Contents = append(request.Contents, toGeminiContent(m))
	}
	if len(tools) > 0 {
		request.Tools = []geminiTool{{
			FunctionDeclarations: functional.Map(tools, func(decl chat.ToolDeclaration) geminiFunctionDeclaration {
				return geminiFunctionDeclaration{
					Name:        decl.Name,
					Description: decl.Description,
					Parameters:  decl.Parameters,
				}
			}),
		}}
	}

	var parsed geminiResponse
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.baseURL, a.model)
	response, err := a.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", a.apiKey).
		SetBody(request).
		SetResult(&parsed).
		SetError(&parsed).
		Post(url)
	if err != nil {
		metrics.CompletionErrorsTotal.WithLabelValues("gemini").Inc()
		a.logger.Error().Err(err).Str("model", a.model).Msg("generateContent failed")
		return nil, apperrors.Wrap(err, apperrors.KindCompletion, "completion_failed", "completion request failed")
	}
	if response.IsError() {
		metrics.CompletionErrorsTotal.WithLabelValues("gemini").Inc()
		msg := fmt.Sprintf("completion request failed with status %d", response.StatusCode())
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, apperrors.New(apperrors.KindCompletion, "completion_failed", msg)
	}
	if len(parsed.Candidates) == 0 {
		metrics.CompletionErrorsTotal.WithLabelValues("gemini").Inc()
		return nil, apperrors.New(apperrors.KindCompletion, "completion_empty", "completion returned no candidates")
	}

	decision := &chat.Decision{}
	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				args = []byte("{}")
			}
			decision.ToolCalls = append(decision.ToolCalls, conversation.ToolCall{
				ID:        fmt.Sprintf("call_%s_%d", part.FunctionCall.Name, len(decision.ToolCalls)),
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			})
			continue
		}
		text.WriteString(part.Text)
	}
	decision.Content = text.String()
	return decision, nil
}

func toGeminiContent(m *conversation.Message) geminiContent {
	switch m.Role {
	case conversation.RoleAssistant:
		content := geminiContent{Role: "model"}
		if m.Content != "" {
			content.Parts = append(content.Parts, geminiPart{Text: m.Content})
		}
		for _, tc := range m.ToolCalls {
			var args map[string]any
			if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
				args = nil
			}
			content.Parts = append(content.Parts, geminiPart{
				FunctionCall: &geminiFunctionCall{Name: tc.Name, Args: args},
			})
		}
		if len(content.Parts) == 0 {
			content.Parts = []geminiPart{{Text: ""}}
		}
		return content
	case conversation.RoleTool:
		content := geminiContent{Role: "function"}
		for _, tr := range m.ToolResponses {
			// functionResponse payloads must be objects; wrap arrays and
			// scalars under a result key.
			var decoded any
			if err := json.Unmarshal([]byte(tr.Content), &decoded); err != nil {
				decoded = tr.Content
			}
			payload, ok := decoded.(map[string]any)
			if !ok {
				payload = map[string]any{"result": decoded}
			}
			content.Parts = append(content.Parts, geminiPart{
				FunctionResponse: &geminiFunctionResponse{Name: tr.Name, Response: payload},
			})
		}
		return content
	default:
		return geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}}
	}
}
