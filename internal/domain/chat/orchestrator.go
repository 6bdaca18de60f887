package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/metrics"
	"todo-server/internal/utils/apperrors"
)

const systemPrompt = `You are a helpful task management assistant. You manage the user's to-do list through the available tools: add_task, list_tasks, complete_task, delete_task and update_task. Use the tools whenever the user asks to create, inspect or modify tasks, then confirm the outcome in plain language. If a tool reports an error, explain the problem to the user instead of retrying endlessly.`

const fallbackResponse = "I couldn't process your request. Please try again."

const roundLimitResponse = "I wasn't able to finish your request within the allowed number of tool steps. Please try again or break it into smaller requests."

// Config bounds a single chat turn.
type Config struct {
	MaxToolRounds     int
	CompletionTimeout time.Duration
}

// TurnResult is the outcome of one chat turn. MessageID is the public id
// of the final assistant message.
type TurnResult struct {
	Conversation *conversation.Conversation
	MessageID    string
	Response     string
}

// Orchestrator drives one chat turn: persist the user message, call the
// completion backend, execute requested tools, and persist exactly one
// final assistant message. Completion and tool failures never fail the
// turn; they surface as an assistant message so the transcript stays
// consistent for the caller.
type Orchestrator struct {
	conversations *conversation.Service
	registry      *Registry
	adapter       Adapter
	cfg           Config
	locks         conversationLocks
	logger        zerolog.Logger
}

func NewOrchestrator(
	conversations *conversation.Service,
	registry *Registry,
	adapter Adapter,
	cfg Config,
	logger zerolog.Logger,
) *Orchestrator {
	if cfg.MaxToolRounds <= 0 {
		cfg.MaxToolRounds = 5
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = 120 * time.Second
	}
	return &Orchestrator{
		conversations: conversations,
		registry:      registry,
		adapter:       adapter,
		cfg:           cfg,
		locks:         conversationLocks{entries: make(map[string]*lockEntry)},
		logger:        logger.With().Str("component", "chat_orchestrator").Logger(),
	}
}

// Turn processes one user message in the given conversation, creating the
// conversation when conversationID is empty. The user message is persisted
// before the first completion call, so a crash mid-turn never loses input.
func (o *Orchestrator) Turn(ctx context.Context, userID uint, conversationID, message string) (*TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.New(apperrors.KindValidation, "message_required", "message must not be empty")
	}

	var conv *conversation.Conversation
	var err error
	if conversationID != "" {
		conv, err = o.conversations.GetOwned(ctx, conversationID, userID)
		if err != nil {
			return nil, err
		}
	} else {
		conv, err = o.conversations.Create(ctx, userID)
		if err != nil {
			return nil, err
		}
		metrics.ConversationsCreatedTotal.Inc()
	}

	// Turns on the same conversation are serialized so interleaved tool
	// rounds cannot corrupt message ordering.
	unlock := o.locks.lock(conv.PublicID)
	defer unlock()

	userMsg := &conversation.Message{Role: conversation.RoleUser, Content: message}
	if err := o.conversations.AppendMessages(ctx, conv, []*conversation.Message{userMsg}); err != nil {
		return nil, err
	}
	o.conversations.EnsureTitle(ctx, conv, message)

	response := o.runLoop(ctx, conv, userID)

	final := &conversation.Message{Role: conversation.RoleAssistant, Content: response}
	if err := o.conversations.AppendMessages(ctx, conv, []*conversation.Message{final}); err != nil {
		return nil, err
	}
	return &TurnResult{Conversation: conv, MessageID: final.PublicID, Response: response}, nil
}

// runLoop runs the completion/tool cycle and returns the final assistant
// text. Intermediate assistant tool-call messages and tool results are
// persisted as they happen; the caller persists the final message.
func (o *Orchestrator) runLoop(ctx context.Context, conv *conversation.Conversation, userID uint) string {
	history, err := o.conversations.ListMessages(ctx, conv)
	if err != nil {
		return o.failureText(conv, err)
	}
	history = append([]*conversation.Message{{
		Role:    conversation.RoleSystem,
		Content: systemPrompt,
	}}, history...)

	tools := o.registry.Declarations()

	for round := 0; round < o.cfg.MaxToolRounds; round++ {
		decision, err := o.complete(ctx, history, tools)
		if err != nil {
			return o.failureText(conv, err)
		}
		if !decision.IsToolCall() {
			metrics.ChatTurnsTotal.WithLabelValues("ok").Inc()
			if strings.TrimSpace(decision.Content) == "" {
				return fallbackResponse
			}
			return decision.Content
		}

		assistantMsg := &conversation.Message{
			Role:      conversation.RoleAssistant,
			Content:   decision.Content,
			ToolCalls: decision.ToolCalls,
		}
		if err := o.conversations.AppendMessages(ctx, conv, []*conversation.Message{assistantMsg}); err != nil {
			return o.failureText(conv, err)
		}
		history = append(history, assistantMsg)

		// Execute in the order the model asked for them.
		for _, call := range decision.ToolCalls {
			result := o.registry.Execute(ctx, userID, call.Name, call.Arguments)
			metrics.ToolExecutionsTotal.WithLabelValues(call.Name, toolStatus(result)).Inc()

			toolMsg := &conversation.Message{
				Role:    conversation.RoleTool,
				Content: result,
				ToolResponses: []conversation.ToolResponse{{
					ToolCallID: call.ID,
					Name:       call.Name,
					Content:    result,
				}},
			}
			if err := o.conversations.AppendMessages(ctx, conv, []*conversation.Message{toolMsg}); err != nil {
				return o.failureText(conv, err)
			}
			history = append(history, toolMsg)
		}
	}

	o.logger.Warn().
		Str("conversation_id", conv.PublicID).
		Int("max_tool_rounds", o.cfg.MaxToolRounds).
		Msg("tool round limit reached")
	metrics.ChatTurnsTotal.WithLabelValues("round_limit").Inc()
	return roundLimitResponse
}

func (o *Orchestrator) complete(ctx context.Context, history []*conversation.Message, tools []ToolDeclaration) (*Decision, error) {
	cctx, cancel := context.WithTimeout(ctx, o.cfg.CompletionTimeout)
	defer cancel()
	return o.adapter.Complete(cctx, history, tools)
}

func (o *Orchestrator) failureText(conv *conversation.Conversation, err error) string {
	o.logger.Error().Err(err).Str("conversation_id", conv.PublicID).Msg("chat turn failed")
	metrics.ChatTurnsTotal.WithLabelValues("failure").Inc()
	return "Sorry, I encountered an error processing your request: " + err.Error()
}

func toolStatus(result string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal([]byte(result), &payload) == nil && payload.Error != "" {
		return "error"
	}
	return "ok"
}

// conversationLocks is a keyed mutex with refcounted entries so idle
// conversations do not accumulate in the map.
type conversationLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (l *conversationLocks) lock(key string) func() {
	l.mu.Lock()
	e := l.entries[key]
	if e == nil {
		e = &lockEntry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
