package conversation_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/database/dbschema"
	"todo-server/internal/infrastructure/database/repository/conversationrepo"
	"todo-server/internal/infrastructure/database/transaction"
	"todo-server/internal/infrastructure/logger"
	"todo-server/internal/utils/apperrors"
)

func newTestService(t *testing.T) *conversation.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&dbschema.Conversation{}, &dbschema.Message{}))

	repo := conversationrepo.NewConversationGormRepository(transaction.NewDatabase(db))
	return conversation.NewService(repo, logger.GetLogger())
}

func TestCreateAndGetOwned(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	conv, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(conv.PublicID, "conv_"))

	got, err := svc.GetOwned(ctx, conv.PublicID, 1)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)

	// Someone else's conversation reads as missing.
	_, err = svc.GetOwned(ctx, conv.PublicID, 2)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Equal(t, "Conversation not found", apperrors.MessageOf(err))

	// Malformed ids short-circuit without a lookup.
	_, err = svc.GetOwned(ctx, "tsk_abcdef", 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestAppendAndListMessages(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	conv, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	msgs := []*conversation.Message{
		{Role: conversation.RoleUser, Content: "add buy milk"},
		{Role: conversation.RoleAssistant, Content: "", ToolCalls: []conversation.ToolCall{
			{ID: "call_1", Name: "add_task", Arguments: `{"title":"Buy milk"}`},
		}},
		{Role: conversation.RoleTool, Content: `{"status":"created"}`, ToolResponses: []conversation.ToolResponse{
			{ToolCallID: "call_1", Name: "add_task", Content: `{"status":"created"}`},
		}},
	}
	require.NoError(t, svc.AppendMessages(ctx, conv, msgs))
	for _, m := range msgs {
		assert.True(t, strings.HasPrefix(m.PublicID, "msg_"))
	}

	listed, err := svc.ListMessages(ctx, conv)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, conversation.RoleUser, listed[0].Role)

	// Tool call and response payloads survive the round trip.
	require.Len(t, listed[1].ToolCalls, 1)
	assert.Equal(t, "call_1", listed[1].ToolCalls[0].ID)
	require.Len(t, listed[2].ToolResponses, 1)
	assert.Equal(t, "add_task", listed[2].ToolResponses[0].Name)
}

func TestAppendRejectsInvalidRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	conv, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	err = svc.AppendMessages(ctx, conv, []*conversation.Message{{Role: "robot", Content: "beep"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestListByUserOrdersByActivity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	second, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2)
	require.NoError(t, err)

	// Touch the older conversation so it becomes the most recent.
	require.NoError(t, svc.AppendMessages(ctx, first, []*conversation.Message{
		{Role: conversation.RoleUser, Content: "hello again"},
	}))

	convs, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, first.PublicID, convs[0].PublicID)
	assert.Equal(t, second.PublicID, convs[1].PublicID)
}

func TestDeleteCascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	conv, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, svc.AppendMessages(ctx, conv, []*conversation.Message{
		{Role: conversation.RoleUser, Content: "hello"},
	}))

	// Only the owner can delete.
	err = svc.Delete(ctx, conv.PublicID, 2)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	require.NoError(t, svc.Delete(ctx, conv.PublicID, 1))

	_, err = svc.GetOwned(ctx, conv.PublicID, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestEnsureTitle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	conv, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, conv.Title)

	svc.EnsureTitle(ctx, conv, "Plan my week, please!")
	require.NotNil(t, conv.Title)
	assert.Equal(t, "Plan my week, please", *conv.Title)

	// Later messages never overwrite the title.
	svc.EnsureTitle(ctx, conv, "something else entirely")
	assert.Equal(t, "Plan my week, please", *conv.Title)

	got, err := svc.GetOwned(ctx, conv.PublicID, 1)
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Plan my week, please", *got.Title)
}

func TestEnsureTitleSkipsUnusableContent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	conv, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	svc.EnsureTitle(ctx, conv, "https://example.com")
	assert.Nil(t, conv.Title)
}
