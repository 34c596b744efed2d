package websocket

import (
	"encoding/json"
	"time"

	"insider-chat-be/internal/service"
	"insider-chat-be/internal/service/dto"
	"insider-chat-be/internal/state"
	"insider-chat-be/internal/validation"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

// Session 把一条连接的身份和它的 (昵称, 房间编码) 绑定关系显式建模
// 绑定在 join-room 成功前为空，期间除加入外的操作一律无效
type Session struct {
	ID       string
	Nickname string
	RoomCode string

	RespCh chan dto.ResponseWrapper
}

func (s *Session) bound() bool {
	return s.RoomCode != ""
}

func ChatSession(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		conn, err := upgrader.Upgrade(
			ctx.ResponseWriter(),
			ctx.Request(),
			nil,
		)
		if err != nil {
			zap.L().Error("升级到WebSocket失败", zap.Error(err))
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		conn.SetPongHandler(heartbeatHandler(conn))

		clientIP := ctx.RemoteAddr()

		sess := &Session{
			ID:     service.GenID(),
			RespCh: make(chan dto.ResponseWrapper, 64),
		}

		// 写协程的退出信号
		writeDoneCh := make(chan struct{})
		defer close(writeDoneCh)

		// 写入协程
		go func() {
			ticker := time.NewTicker(HEARTBEAT_INTERVAL)
			defer ticker.Stop()

			for {
				select {
				case <-writeDoneCh:
					zap.L().Debug(
						"WebSocket写入协程退出",
						zap.String("client_ip", clientIP),
					)
					return

				case <-ticker.C:
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						zap.L().Error(
							"发送心跳失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}

					conn.SetWriteDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))

				case resp := <-sess.RespCh:
					if err := conn.WriteJSON(resp); err != nil {
						zap.L().Error(
							"发送消息失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}
				}
			}
		}()

		// 读取协程（主协程）
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
				) {
					zap.L().Error(
						"读取消息失败",
						zap.String("client_ip", clientIP),
						zap.Error(err),
					)
				}

				break
			}

			var wrapper dto.RequestWrapper

			if err := json.Unmarshal(msg, &wrapper); err != nil {
				zap.L().Error(
					"解析消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)

				// 格式非法的请求直接丢弃，不惊动房间里的任何人
				continue
			}

			handleRequest(appState, sess, wrapper, clientIP)
		}

		// 读循环退出，表示客户端断开连接
		// 断线是唯一的取消信号，必须走退出路径让房间状态保持一致
		appState.ChatSvc.Leave(sess.ID, sess.RoomCode)

		zap.L().Info(
			"WebSocket连接处理完成",
			zap.String("client_ip", clientIP),
			zap.String("session_id", sess.ID),
		)
	}
}

// handleRequest 按事件类型分发一条入站请求
// 边界校验在这里完成，核心服务只会收到已验证的参数
func handleRequest(
	appState *state.AppState,
	sess *Session,
	wrapper dto.RequestWrapper,
	clientIP string,
) {
	if req := dto.TryUnwrapJoinRoomRequest(wrapper); req != nil {
		if sess.bound() {
			zap.L().Warn(
				"会话已绑定房间，忽略重复的加入请求",
				zap.String("client_ip", clientIP),
				zap.String("room_code", sess.RoomCode),
			)
			return
		}

		nickname, err := validation.Nickname(req.Nickname)
		if err != nil {
			sess.RespCh <- dto.WrapJoinError(err.Error())
			return
		}

		roomCode, err := validation.RoomCode(req.RoomCode)
		if err != nil {
			sess.RespCh <- dto.WrapJoinError(err.Error())
			return
		}

		user := &service.User{
			ID:       sess.ID,
			Nickname: nickname,
			RespCh:   sess.RespCh,
		}

		if err := appState.ChatSvc.Join(user, roomCode, req.Create); err != nil {
			sess.RespCh <- dto.WrapJoinError(err.Error())
			return
		}

		sess.Nickname = nickname
		sess.RoomCode = roomCode

		zap.L().Info(
			"用户成功加入房间",
			zap.String("client_ip", clientIP),
			zap.String("session_id", sess.ID),
			zap.String("nickname", nickname),
			zap.String("room_code", roomCode),
		)

		return
	}

	// 绑定建立之前，其余操作都是无效的
	if !sess.bound() {
		zap.L().Debug(
			"会话尚未加入房间，忽略请求",
			zap.String("client_ip", clientIP),
			zap.String("request_type", wrapper.ReqType),
		)
		return
	}

	if req := dto.TryUnwrapSendMessageRequest(wrapper); req != nil {
		content, err := validation.MessageContent(req.Content)
		if err != nil {
			zap.L().Debug(
				"消息内容未通过校验，丢弃",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			return
		}

		appState.ChatSvc.PostMessage(
			sess.ID,
			sess.RoomCode,
			content,
			validation.MessageType(req.MessageType),
		)

		return
	}

	if req := dto.TryUnwrapStartGameRequest(wrapper); req != nil {
		word, err := validation.TargetWord(req.TargetWord)
		if err != nil {
			sess.RespCh <- dto.WrapGameError(err.Error())
			return
		}

		appState.ChatSvc.StartGame(sess.ID, sess.RoomCode, word)

		return
	}

	if dto.TryUnwrapWordGuessedRequest(wrapper) != nil {
		appState.ChatSvc.WordGuessed(sess.ID, sess.RoomCode)

		return
	}

	if req := dto.TryUnwrapSubmitVoteRequest(wrapper); req != nil {
		appState.ChatSvc.SubmitVote(sess.ID, sess.RoomCode, req.VotedForNickname)

		return
	}

	zap.L().Warn(
		"未知的请求类型",
		zap.String("client_ip", clientIP),
		zap.String("request_type", wrapper.ReqType),
	)
}
