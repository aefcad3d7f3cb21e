package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moodlog/internal/models/db_models"
	"moodlog/internal/models/response_models"
	"moodlog/internal/repositories"
	"moodlog/pkg/utils"
)

const (
	chatContextPosts    = 3
	chatContextMessages = 10

	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

const chatFallbackReply = "I'm having trouble responding right now, but I'm here for you. Take a slow breath, and feel free to share more whenever you're ready."

type ChatServiceInterface interface {
	Send(ctx context.Context, accountID uuid.UUID, message string) (*response_models.ChatMessageResponse, error)
	History(ctx context.Context, accountID uuid.UUID, limit int) ([]response_models.ChatMessageResponse, error)
	Clear(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type ChatService struct {
	chatRepo repositories.ChatRepository
	postRepo repositories.PostRepository
	ai       utils.GenerativeClient
	timeout  time.Duration
	loc      *time.Location
	log      *zap.Logger
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	postRepo repositories.PostRepository,
	ai utils.GenerativeClient,
	timeout time.Duration,
	loc *time.Location,
	log *zap.Logger,
) ChatServiceInterface {
	return &ChatService{
		chatRepo: chatRepo,
		postRepo: postRepo,
		ai:       ai,
		timeout:  timeout,
		loc:      loc,
		log:      log,
	}
}

func (s *ChatService) Send(ctx context.Context, accountID uuid.UUID, message string) (*response_models.ChatMessageResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, utils.ErrEmptyMessage
	}

	userMsg := &db_models.ChatMessage{AccountID: accountID, Role: db_models.ChatRoleUser, Content: message}
	if err := s.chatRepo.Insert(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	recent, err := s.postRepo.ListByAccount(ctx, accountID, chatContextPosts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	history, err := s.chatRepo.Recent(ctx, accountID, &userMsg.ID, chatContextMessages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	reply := s.generateReply(ctx, buildChatPrompt(recent, history, message))

	assistantMsg := &db_models.ChatMessage{AccountID: accountID, Role: db_models.ChatRoleAssistant, Content: reply}
	// replies sort strictly after the question even within one millisecond
	if time.Now().UnixMilli() <= userMsg.CreatedAt {
		assistantMsg.CreatedAt = userMsg.CreatedAt + 1
	}
	if err := s.chatRepo.Insert(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	resp := s.toChatResponse(assistantMsg)
	return &resp, nil
}

func (s *ChatService) generateReply(ctx context.Context, prompt string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.ai.GenerateText(ctx, prompt)
	if err == nil {
		reply = strings.TrimSpace(reply)
	}
	if err != nil || reply == "" {
		s.log.Warn("chat reply failed, using fallback", zap.Error(err))
		return chatFallbackReply
	}
	return reply
}

func (s *ChatService) History(ctx context.Context, accountID uuid.UUID, limit int) ([]response_models.ChatMessageResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	msgs, err := s.chatRepo.Recent(ctx, accountID, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.ChatMessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, s.toChatResponse(&msgs[i]))
	}
	return out, nil
}

func (s *ChatService) Clear(ctx context.Context, accountID uuid.UUID) (int64, error) {
	n, err := s.chatRepo.DeleteByAccount(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return n, nil
}

func (s *ChatService) toChatResponse(m *db_models.ChatMessage) response_models.ChatMessageResponse {
	return response_models.ChatMessageResponse{
		ID:        m.ID.String(),
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: utils.FromUnixMillis(m.CreatedAt, s.loc),
	}
}
