package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/api/middleware"
	"github.com/jpark/commute-connect/internal/domain"
	"github.com/jpark/commute-connect/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type CreateChatRequest struct {
	OtherUserID string `json:"other_user_id"`
}

type ParticipantResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type MessageResponse struct {
	ID             string    `json:"id"`
	ChatID         string    `json:"chat_id"`
	SenderID       string    `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type ChatResponse struct {
	ID               string                `json:"id"`
	CreatedAt        time.Time             `json:"created_at"`
	Participants     []ParticipantResponse `json:"participants"`
	OtherParticipant *ParticipantResponse  `json:"other_participant"`
	LastMessage      *MessageResponse      `json:"last_message"`
	UnreadCount      int64                 `json:"unread_count"`
}

type CreateChatResponse struct {
	Chat    ChatResponse `json:"chat"`
	Created bool         `json:"created"`
}

func newParticipantResponse(user *domain.User) *ParticipantResponse {
	if user == nil {
		return nil
	}
	return &ParticipantResponse{UserID: user.ID.String(), Username: user.Username}
}

func newMessageResponse(message *domain.Message) *MessageResponse {
	if message == nil {
		return nil
	}
	resp := &MessageResponse{
		ID:        message.ID.String(),
		ChatID:    message.ChatID.String(),
		SenderID:  message.SenderID.String(),
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
	if message.Sender != nil {
		resp.SenderUsername = message.Sender.Username
	}
	return resp
}

func newChatResponse(summary *domain.ChatSummary) ChatResponse {
	chat := summary.Chat
	participants := make([]ParticipantResponse, 0, 2)
	if p := newParticipantResponse(chat.UserA); p != nil {
		participants = append(participants, *p)
	}
	if p := newParticipantResponse(chat.UserB); p != nil {
		participants = append(participants, *p)
	}

	return ChatResponse{
		ID:               chat.ID.String(),
		CreatedAt:        chat.CreatedAt,
		Participants:     participants,
		OtherParticipant: newParticipantResponse(summary.OtherParticipant),
		LastMessage:      newMessageResponse(summary.LastMessage),
		UnreadCount:      summary.UnreadCount,
	}
}

// CreateOrGet returns the chat for the caller and the given user, creating it
// on first contact. 201 signals a newly created chat, 200 an existing one.
func (h *ChatHandler) CreateOrGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid request body")
		return
	}

	otherUserID, err := uuid.Parse(req.OtherUserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "other_user_id is required")
		return
	}

	chat, created, err := h.chatService.CreateOrGetChat(r.Context(), userID, otherUserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	summary, err := h.chatService.GetChat(r.Context(), userID, chat.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, CreateChatResponse{Chat: newChatResponse(summary), Created: created})
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	summaries, err := h.chatService.ListChats(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]ChatResponse, len(summaries))
	for i, summary := range summaries {
		resp[i] = newChatResponse(summary)
	}
	writeJSON(w, http.StatusOK, map[string][]ChatResponse{"chats": resp})
}

func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid chat id")
		return
	}

	summary, err := h.chatService.GetChat(r.Context(), userID, chatID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]ChatResponse{"chat": newChatResponse(summary)})
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid chat id")
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), userID, chatID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]MessageResponse, len(messages))
	for i, message := range messages {
		resp[i] = *newMessageResponse(message)
	}
	writeJSON(w, http.StatusOK, map[string][]MessageResponse{"messages": resp})
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid chat id")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid request body")
		return
	}

	message, err := h.chatService.SendMessage(r.Context(), userID, chatID, req.Content)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]*MessageResponse{"message": newMessageResponse(message)})
}
