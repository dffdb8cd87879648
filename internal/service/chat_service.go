package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/domain"
	"github.com/jpark/commute-connect/internal/repository"
	"gorm.io/gorm"
)

type ChatService struct {
	chatRepo     repository.ChatRepository
	messageRepo  repository.MessageRepository
	chatReadRepo repository.ChatReadRepository
	userRepo     repository.UserRepository
}

func NewChatService(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	chatReadRepo repository.ChatReadRepository,
	userRepo repository.UserRepository,
) *ChatService {
	return &ChatService{
		chatRepo:     chatRepo,
		messageRepo:  messageRepo,
		chatReadRepo: chatReadRepo,
		userRepo:     userRepo,
	}
}

// CreateOrGetChat returns the existing chat for the pair, creating it when
// absent. Created reports whether this call made the chat. When both
// participants race the first creation, the pair's unique index rejects the
// second insert and that caller falls back to the lookup.
func (s *ChatService) CreateOrGetChat(ctx context.Context, userID, otherUserID uuid.UUID) (chat *domain.Chat, created bool, err error) {
	if otherUserID == userID {
		return nil, false, domain.ErrChatWithSelf
	}

	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, domain.ErrUserNotFound
		}
		return nil, false, err
	}

	userAID, userBID := domain.NormalizePair(userID, otherUserID)

	existing, err := s.chatRepo.GetByPair(ctx, userAID, userBID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	chat = &domain.Chat{
		ID:        uuid.New(),
		UserAID:   userAID,
		UserBID:   userBID,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := s.chatRepo.GetByPair(ctx, userAID, userBID)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	// Re-read so the participant associations are populated.
	chat, err = s.chatRepo.GetByID(ctx, chat.ID)
	if err != nil {
		return nil, false, err
	}
	return chat, true, nil
}

// ListChats returns every chat the user participates in, newest activity
// first. Chats without messages sort last, by creation time descending.
func (s *ChatService) ListChats(ctx context.Context, userID uuid.UUID) ([]*domain.ChatSummary, error) {
	chats, err := s.chatRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summary, err := s.summarize(ctx, chat, userID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		li, lj := summaries[i].LastMessage, summaries[j].LastMessage
		switch {
		case li != nil && lj != nil:
			return li.CreatedAt.After(lj.CreatedAt)
		case li != nil:
			return true
		case lj != nil:
			return false
		default:
			return summaries[i].Chat.CreatedAt.After(summaries[j].Chat.CreatedAt)
		}
	})

	return summaries, nil
}

func (s *ChatService) summarize(ctx context.Context, chat *domain.Chat, userID uuid.UUID) (*domain.ChatSummary, error) {
	lastMessage, err := s.messageRepo.GetLastByChatID(ctx, chat.ID)
	if err != nil {
		return nil, err
	}

	read, err := s.chatReadRepo.Get(ctx, chat.ID, userID)
	if err != nil {
		return nil, err
	}
	var since *time.Time
	if read != nil {
		since = &read.LastReadAt
	}

	unread, err := s.messageRepo.CountUnread(ctx, chat.ID, userID, since)
	if err != nil {
		return nil, err
	}

	other := chat.UserA
	if chat.UserAID == userID {
		other = chat.UserB
	}

	return &domain.ChatSummary{
		Chat:             chat,
		OtherParticipant: other,
		LastMessage:      lastMessage,
		UnreadCount:      unread,
	}, nil
}

// GetChat fetches a single chat the user participates in.
func (s *ChatService) GetChat(ctx context.Context, userID, chatID uuid.UUID) (*domain.ChatSummary, error) {
	chat, err := s.loadChatFor(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, chat, userID)
}

// ListMessages returns the chat's messages oldest first and advances the
// caller's read marker to now.
func (s *ChatService) ListMessages(ctx context.Context, userID, chatID uuid.UUID) ([]*domain.Message, error) {
	if _, err := s.loadChatFor(ctx, userID, chatID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if err := s.chatReadRepo.Upsert(ctx, chatID, userID, time.Now()); err != nil {
		return nil, err
	}

	return messages, nil
}

// SendMessage appends one immutable message to the chat. Content is trimmed
// of surrounding whitespace; whitespace-only content is rejected.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID uuid.UUID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}

	if _, err := s.loadChatFor(ctx, userID, chatID); err != nil {
		return nil, err
	}

	message := &domain.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		SenderID:  userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// The sender has obviously seen their own message.
	if err := s.chatReadRepo.Upsert(ctx, chatID, userID, message.CreatedAt); err != nil {
		return nil, err
	}

	return s.withSender(ctx, message, userID)
}

func (s *ChatService) withSender(ctx context.Context, message *domain.Message, senderID uuid.UUID) (*domain.Message, error) {
	if message.Sender == nil {
		sender, err := s.userRepo.GetByID(ctx, senderID)
		if err != nil {
			return nil, err
		}
		message.Sender = sender
	}
	return message, nil
}

// loadChatFor fetches the chat and checks membership. A chat that exists but
// does not include the user is reported as not-participant rather than
// not-found, matching the forbidden semantics of the API.
func (s *ChatService) loadChatFor(ctx context.Context, userID, chatID uuid.UUID) (*domain.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, domain.ErrNotParticipant
	}
	return chat, nil
}
