package dto

// 客户端发送的房间操作

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
	// 仅当携带创建意图时允许创建房间，否则查不到就是硬性拒绝
	Create bool `json:"create"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
	// 可空，省略时按普通用户消息处理
	MessageType string `json:"messageType,omitempty"`
}

type StartGameRequest struct {
	TargetWord string `json:"targetWord"`
}

type WordGuessedRequest struct{}

type SubmitVoteRequest struct {
	VotedForNickname string `json:"votedForNickname"`
}

// HTTP 接口：分配房间编码
type CreateRoomRequest struct {
	Nickname string `json:"nickname"`
}

type CreateRoomResponse struct {
	RoomCode string `json:"roomCode"`
}

// 服务器发送的房间事件

type JoinSuccessResponse struct {
	Messages  []Message     `json:"messages"`
	GameState *GameSnapshot `json:"gameState"`
	OwnerID   string        `json:"ownerId"`
}

type UserListUpdateResponse struct {
	Users []User `json:"users"`
}

type NewMessageResponse struct {
	Message Message `json:"message"`
}

type GameStateUpdateResponse struct {
	Game *GameSnapshot `json:"game"`
}

// 只会单播给一个玩家，谜底词只有 Master 和 Insider 能看到
type RoleAssignedResponse struct {
	Role       string `json:"role"`
	TargetWord string `json:"targetWord,omitempty"`
}

type ErrorResponse struct {
	Reason string `json:"reason"`
}
