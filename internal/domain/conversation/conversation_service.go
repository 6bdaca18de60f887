package conversation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"todo-server/internal/utils/apperrors"
	"todo-server/internal/utils/idgen"
	"todo-server/internal/utils/stringutils"
)

const (
	conversationIDPrefix = "conv"
	messageIDPrefix      = "msg"
	secureIDLength       = 16
	maxTitleLength       = 60
)

// Service manages conversation transcripts: creation, ownership-scoped
// lookup, and append-only message history.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "conversation_service").Logger(),
	}
}

// Create starts an empty conversation for the user.
func (s *Service) Create(ctx context.Context, userID uint) (*Conversation, error) {
	publicID, err := idgen.GenerateSecureID(conversationIDPrefix, secureIDLength)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "id_generation_failed", "failed to generate conversation id")
	}
	conv := &Conversation{
		PublicID: publicID,
		UserID:   userID,
	}
	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "conversation_create_failed", "failed to create conversation")
	}
	s.logger.Debug().Str("conversation_id", conv.PublicID).Msg("conversation created")
	return conv, nil
}

// GetOwned resolves a conversation by public id for the given user. A
// conversation owned by someone else is reported as not found, never as
// forbidden, so ids cannot be probed.
func (s *Service) GetOwned(ctx context.Context, publicID string, userID uint) (*Conversation, error) {
	if !idgen.ValidateIDFormat(publicID, conversationIDPrefix) {
		return nil, apperrors.New(apperrors.KindNotFound, "conversation_not_found", "Conversation not found")
	}
	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "conversation_lookup_failed", "failed to look up conversation")
	}
	if conv == nil || conv.UserID != userID {
		return nil, apperrors.New(apperrors.KindNotFound, "conversation_not_found", "Conversation not found")
	}
	return conv, nil
}

// ListByUser returns the user's conversations, most recently updated first.
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]*Conversation, error) {
	convs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "conversation_list_failed", "failed to list conversations")
	}
	return convs, nil
}

// Delete removes the conversation and its messages.
func (s *Service) Delete(ctx context.Context, publicID string, userID uint) error {
	conv, err := s.GetOwned(ctx, publicID, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, conv); err != nil {
		return apperrors.Wrap(err, apperrors.KindInternal, "conversation_delete_failed", "failed to delete conversation")
	}
	s.logger.Debug().Str("conversation_id", publicID).Msg("conversation deleted")
	return nil
}

// AppendMessages assigns public ids and persists the messages in order,
// then bumps the conversation's updated timestamp.
func (s *Service) AppendMessages(ctx context.Context, conv *Conversation, msgs []*Message) error {
	if len(msgs) == 0 {
		return nil
	}
	for _, m := range msgs {
		if !m.Role.Valid() {
			return apperrors.Newf(apperrors.KindValidation, "invalid_role", "invalid message role %q", m.Role)
		}
		publicID, err := idgen.GenerateSecureID(messageIDPrefix, secureIDLength)
		if err != nil {
			return apperrors.Wrap(err, apperrors.KindInternal, "id_generation_failed", "failed to generate message id")
		}
		m.PublicID = publicID
		m.ConversationID = conv.ID
	}
	if err := s.repo.AppendMessages(ctx, msgs); err != nil {
		return apperrors.Wrap(err, apperrors.KindInternal, "message_append_failed", "failed to append messages")
	}

	conv.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, conv); err != nil {
		return apperrors.Wrap(err, apperrors.KindInternal, "conversation_update_failed", "failed to update conversation")
	}
	return nil
}

// ListMessages returns the transcript in insertion order.
func (s *Service) ListMessages(ctx context.Context, conv *Conversation) ([]*Message, error) {
	msgs, err := s.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "message_list_failed", "failed to list messages")
	}
	return msgs, nil
}

// EnsureTitle derives a title from the first user message when the
// conversation does not have one yet.
func (s *Service) EnsureTitle(ctx context.Context, conv *Conversation, content string) {
	if conv.Title != nil && *conv.Title != "" {
		return
	}
	title := stringutils.GenerateTitle(content, maxTitleLength)
	if title == "" {
		return
	}
	conv.Title = &title
	if err := s.repo.Update(ctx, conv); err != nil {
		s.logger.Warn().Err(err).Str("conversation_id", conv.PublicID).Msg("failed to set conversation title")
	}
}
