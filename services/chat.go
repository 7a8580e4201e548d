package services

import (
	"context"
	"fmt"
	"strings"

	"news-reader/models"
)

const maxChatHistory = 20

// SendChat forwards a message to the assistant with the session's recent
// conversation and records both sides on success.
func SendChat(ctx context.Context, st *SessionState, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}

	reply, err := st.API().Chat(ctx, message, st.ChatHistory())
	if err != nil {
		return "", err
	}

	st.mu.Lock()
	st.chat = append(st.chat,
		models.ChatMessage{Role: models.ChatRoleUser, Content: message},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: reply},
	)
	if len(st.chat) > maxChatHistory {
		st.chat = append([]models.ChatMessage(nil), st.chat[len(st.chat)-maxChatHistory:]...)
	}
	st.mu.Unlock()
	return reply, nil
}

func (s *SessionState) ChatHistory() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ChatMessage(nil), s.chat...)
}
