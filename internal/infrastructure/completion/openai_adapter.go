// Package completion provides the pluggable completion backends used by
// the chat orchestrator.
package completion

import (
	"context"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"todo-server/internal/config"
	"todo-server/internal/domain/chat"
	"todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/metrics"
	"todo-server/internal/utils/apperrors"
	"todo-server/internal/utils/functional"
)

// OpenAIAdapter talks to any OpenAI-compatible chat completion endpoint.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

var _ chat.Adapter = (*OpenAIAdapter)(nil)

func NewOpenAIAdapter(cfg *config.Config, logger zerolog.Logger) *OpenAIAdapter {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.OpenAIModel,
		logger: logger.With().Str("component", "openai_adapter").Logger(),
	}
}

func (a *OpenAIAdapter) Complete(ctx context.Context, history []*conversation.Message, tools []chat.ToolDeclaration) (*chat.Decision, error) {
	request := openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: toOpenAIMessages(history),
	}
	if len(tools) > 0 {
		request.Tools = functional.Map(tools, func(decl chat.ToolDeclaration) openai.Tool {
			return openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        decl.Name,
					Description: decl.Description,
					Parameters:  decl.Parameters,
				},
			}
		})
	}

	response, err := a.client.CreateChatCompletion(ctx, request)
	if err != nil {
		metrics.CompletionErrorsTotal.WithLabelValues("openai").Inc()
		a.logger.Error().Err(err).Str("model", a.model).Msg("chat completion failed")
		return nil, apperrors.Wrap(err, apperrors.KindCompletion, "completion_failed", "completion request failed")
	}
	if len(response.Choices) == 0 {
		metrics.CompletionErrorsTotal.WithLabelValues("openai").Inc()
		return nil, apperrors.New(apperrors.KindCompletion, "completion_empty", "completion returned no choices")
	}

	// Some OpenAI-compatible backends report finish_reason "stop" even when
	// tool calls are present, so the calls themselves are authoritative.
	choice := response.Choices[0]
	if len(choice.Message.ToolCalls) > 0 {
		return &chat.Decision{
			Content: choice.Message.Content,
			ToolCalls: functional.Map(choice.Message.ToolCalls, func(tc openai.ToolCall) conversation.ToolCall {
				return conversation.ToolCall{
					ID:        tc.ID,
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				}
			}),
		}, nil
	}
	return &chat.Decision{Content: choice.Message.Content}, nil
}

func toOpenAIMessages(history []*conversation.Message) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case conversation.RoleSystem:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleSystem,
				Content: m.Content,
			})
		case conversation.RoleUser:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: m.Content,
			})
		case conversation.RoleAssistant:
			msg := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: m.Content,
			}
			msg.ToolCalls = functional.Map(m.ToolCalls, func(tc conversation.ToolCall) openai.ToolCall {
				return openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				}
			})
			messages = append(messages, msg)
		case conversation.RoleTool:
			for _, tr := range m.ToolResponses {
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					ToolCallID: tr.ToolCallID,
					Content:    tr.Content,
				})
			}
		}
	}
	return messages
}
