package main

import (
	"insider-chat-be/internal/api/http"
	"insider-chat-be/internal/config"
	"insider-chat-be/internal/logger"
	"insider-chat-be/internal/service"
	"insider-chat-be/internal/state"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)

	chatSvc := service.NewChatService()

	// 启动进程级定时扫描（提问阶段超时 + 投票阶段超时），全局只注册一次
	chatSvc.StartPhaseSweeps()

	// 组装应用状态
	appState := state.NewAppState(
		cfg,
		chatSvc,
	)

	// 启动服务器
	http.RunServer(appState)
}
