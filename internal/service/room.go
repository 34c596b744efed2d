package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"insider-chat-be/internal/service/dto"
	"insider-chat-be/internal/service/game"

	"go.uber.org/zap"
)

// 每个房间最多保留的消息条数，超出后从头部淘汰
const MAX_MESSAGES = 100

var (
	ErrRoomNotFound  = errors.New("This room does not exist.")
	ErrNicknameTaken = errors.New("This nickname is already taken in the room.")
)

// User 把一条连接的身份绑定到房间内的昵称上
// RespCh 由连接的写协程消费，是广播扇出的唯一通道
type User struct {
	ID       string
	Nickname string
	RespCh   chan dto.ResponseWrapper
}

// Room 持有成员列表、消息记录和可选的一局游戏
// Users 保持加入顺序，Users[0] 就是房主
type Room struct {
	mu sync.Mutex

	Code     string
	Users    []*User
	Messages []dto.Message
	Game     *game.Game

	// 房间内单调递增的消息序号
	msgSeq uint64
}

func newRoom(code string) *Room {
	return &Room{
		Code:     code,
		Users:    make([]*User, 0, game.MIN_PLAYERS),
		Messages: make([]dto.Message, 0, MAX_MESSAGES),
	}
}

// ChatService 是进程级的房间注册表，所有房间的生命周期都归它管
type ChatService struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	sweepDone chan struct{}
}

func NewChatService() *ChatService {
	return &ChatService{
		rooms:     make(map[string]*Room),
		sweepDone: make(chan struct{}),
	}
}

func (cs *ChatService) Close() {
	close(cs.sweepDone)
}

// Join 把用户加入指定房间
// 房间不存在时只有携带创建意图才会创建；并发创建同一个房间时先到者胜，后到者正常加入。
// 成功后：入场通知进消息记录，完整历史和游戏状态只回给加入者本人，
// 成员列表广播给全房间，入场通知广播给除加入者以外的成员（加入者已经从历史里拿到了）
func (cs *ChatService) Join(user *User, roomCode string, create bool) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	room := cs.rooms[roomCode]
	if room == nil {
		if !create {
			return ErrRoomNotFound
		}

		room = newRoom(roomCode)
		cs.rooms[roomCode] = room

		zap.S().Infof("房间 %s 由 %s 创建", roomCode, user.Nickname)
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	// 昵称在房间内唯一，大小写敏感的精确匹配
	for _, u := range room.Users {
		if u.Nickname == user.Nickname {
			return ErrNicknameTaken
		}
	}

	room.Users = append(room.Users, user)

	notif := room.appendNotification(
		fmt.Sprintf("%s has joined the room.", user.Nickname),
	)

	var snapshot *dto.GameSnapshot
	if room.Game != nil {
		snapshot = room.Game.Snapshot()
	}

	history := make([]dto.Message, len(room.Messages))
	copy(history, room.Messages)

	sendResp(user, dto.WrapResponse(
		dto.RESP_JOIN_SUCCESS,
		dto.JoinSuccessResponse{
			Messages:  history,
			GameState: snapshot,
			OwnerID:   room.Users[0].ID,
		},
	))

	room.broadcast(dto.WrapResponse(
		dto.RESP_USER_LIST,
		dto.UserListUpdateResponse{Users: room.userList()},
	))

	room.broadcastExcept(user.ID, dto.WrapResponse(
		dto.RESP_NEW_MESSAGE,
		dto.NewMessageResponse{Message: notif},
	))

	zap.S().Infof("房间 %s 接纳用户 %s(%s)", roomCode, user.Nickname, user.ID)

	return nil
}

// Leave 处理断线或主动退出
// 最后一个成员离开时房间立即销毁；否则进行中的游戏被强制暂停，
// 并向剩余成员广播离场通知和新的成员列表
func (cs *ChatService) Leave(userID, roomCode string) {
	if roomCode == "" {
		return
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	room := cs.rooms[roomCode]
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	var left *User

	for i, u := range room.Users {
		if u.ID == userID {
			left = u
			room.Users = append(room.Users[:i], room.Users[i+1:]...)
			break
		}
	}

	if left == nil {
		return
	}

	if len(room.Users) == 0 {
		// 空房间立即销毁，此时也没有任何人需要接收广播
		delete(cs.rooms, roomCode)

		zap.S().Infof("房间 %s 已无成员，销毁", roomCode)

		return
	}

	if room.Game != nil && room.Game.Pause() {
		room.broadcast(dto.WrapResponse(
			dto.RESP_GAME_STATE,
			dto.GameStateUpdateResponse{Game: room.Game.Snapshot()},
		))

		zap.S().Infof("房间 %s 因 %s 离开而暂停游戏", roomCode, left.Nickname)
	}

	notif := room.appendNotification(
		fmt.Sprintf("%s has left the room.", left.Nickname),
	)

	room.broadcast(dto.WrapResponse(
		dto.RESP_NEW_MESSAGE,
		dto.NewMessageResponse{Message: notif},
	))

	room.broadcast(dto.WrapResponse(
		dto.RESP_USER_LIST,
		dto.UserListUpdateResponse{Users: room.userList()},
	))

	zap.S().Infof("房间 %s 用户 %s 离开", roomCode, left.Nickname)
}

// PostMessage 追加一条用户消息并广播给全房间
// 发送者和房间的绑定关系失效时静默丢弃，陈旧客户端的消息不算错误
func (cs *ChatService) PostMessage(userID, roomCode, content, msgType string) {
	room := cs.lookupRoom(roomCode)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	sender := room.member(userID)
	if sender == nil {
		return
	}

	msg := room.appendMessage(dto.Message{
		Type:      msgType,
		Content:   content,
		Sender:    sender.Nickname,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	room.broadcast(dto.WrapResponse(
		dto.RESP_NEW_MESSAGE,
		dto.NewMessageResponse{Message: msg},
	))
}

func (cs *ChatService) lookupRoom(roomCode string) *Room {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return cs.rooms[roomCode]
}
