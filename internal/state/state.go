package state

import (
	"insider-chat-be/internal/config"
	"insider-chat-be/internal/service"
)

type AppState struct {
	Cfg     *config.AppConfig
	ChatSvc *service.ChatService
}

func NewAppState(
	cfg *config.AppConfig,
	chatSvc *service.ChatService,
) *AppState {
	return &AppState{
		Cfg:     cfg,
		ChatSvc: chatSvc,
	}
}
