package service

import (
	"fmt"
	"math/rand/v2"

	"insider-chat-be/internal/service/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func GenID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("Failed to generate UUID: " + err.Error())
	}

	s := id.String()

	return s[len(s)-8:]
}

const roomCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenRoomCode 生成 6 位字母数字房间编码
// 编码只是入口凭证，房间本体要等首个携带创建意图的加入请求才会建立
func GenRoomCode() string {
	code := make([]byte, 6)
	for i := range code {
		code[i] = roomCodeCharset[rand.IntN(len(roomCodeCharset))]
	}

	return string(code)
}

// 非阻塞发送：写协程消费不及时就丢弃，广播不等待任何慢客户端
func sendResp(u *User, resp dto.ResponseWrapper) {
	select {
	case u.RespCh <- resp:
	default:
		zap.L().Warn(
			"发送响应失败：用户响应通道已满",
			zap.String("user_id", u.ID),
			zap.String("response_type", resp.RespType),
		)
	}
}

func (r *Room) broadcast(resp dto.ResponseWrapper) {
	for _, u := range r.Users {
		sendResp(u, resp)
	}
}

func (r *Room) broadcastExcept(userID string, resp dto.ResponseWrapper) {
	for _, u := range r.Users {
		if u.ID == userID {
			continue
		}
		sendResp(u, resp)
	}
}

func (r *Room) member(userID string) *User {
	for _, u := range r.Users {
		if u.ID == userID {
			return u
		}
	}

	return nil
}

func (r *Room) memberNicknames() []string {
	nicknames := make([]string, 0, len(r.Users))
	for _, u := range r.Users {
		nicknames = append(nicknames, u.Nickname)
	}

	return nicknames
}

func (r *Room) userList() []dto.User {
	users := make([]dto.User, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, dto.User{ID: u.ID, Nickname: u.Nickname})
	}

	return users
}

// appendMessage 分配消息 ID 并追加进记录，超过上限时从头部淘汰
// 必须在持有房间锁的前提下调用
func (r *Room) appendMessage(msg dto.Message) dto.Message {
	r.msgSeq++
	msg.ID = fmt.Sprintf("%s-%d", r.Code, r.msgSeq)

	r.Messages = append(r.Messages, msg)
	if len(r.Messages) > MAX_MESSAGES {
		r.Messages = r.Messages[1:]
	}

	return msg
}

func (r *Room) appendNotification(text string) dto.Message {
	return r.appendMessage(dto.Message{
		Type: dto.MSG_TYPE_NOTIFICATION,
		Text: text,
	})
}
