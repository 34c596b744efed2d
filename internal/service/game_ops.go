package service

import (
	"fmt"
	"time"

	"insider-chat-be/internal/service/dto"
	"insider-chat-be/internal/service/game"

	"go.uber.org/zap"
)

// 游戏操作的失败都只回给发起者本人（game-error），绝不影响其他成员，
// 也绝不在拒绝时改动任何状态；阶段不符的陈旧请求一律按无效操作静默忽略

// StartGame 由房主发起新的一局，整体替换掉已结束或已暂停的旧局
func (cs *ChatService) StartGame(userID, roomCode, targetWord string) {
	room := cs.lookupRoom(roomCode)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	requester := room.member(userID)
	if requester == nil {
		return
	}

	// 只有首位加入的成员（房主）有权开局
	if room.Users[0].ID != userID {
		sendResp(requester, dto.WrapGameError("Only the room owner can start the game."))
		return
	}

	if room.Game != nil && room.Game.Active() {
		sendResp(requester, dto.WrapGameError("A game is already in progress."))
		return
	}

	g, err := game.NewGame(room.memberNicknames(), targetWord, time.Now())
	if err != nil {
		sendResp(requester, dto.WrapGameError(err.Error()))
		return
	}

	room.Game = g

	room.broadcast(dto.WrapResponse(
		dto.RESP_GAME_STATE,
		dto.GameStateUpdateResponse{Game: g.Snapshot()},
	))

	// 身份逐个单播，谜底词只发给 Master 和 Insider
	for _, u := range room.Users {
		role := g.RoleOf(u.Nickname)

		payload := dto.RoleAssignedResponse{Role: role}
		if role == game.ROLE_MASTER || role == game.ROLE_INSIDER {
			payload.TargetWord = g.TargetWord
		}

		sendResp(u, dto.WrapResponse(dto.RESP_ROLE_ASSIGNED, payload))
	}

	notif := room.appendNotification(fmt.Sprintf(
		"The Insider game has started! %s is the Master. You have 5 minutes to guess the word.",
		g.MasterNickname(),
	))

	room.broadcast(dto.WrapResponse(
		dto.RESP_NEW_MESSAGE,
		dto.NewMessageResponse{Message: notif},
	))

	zap.S().Infof("房间 %s 开始新的一局，Master 为 %s", roomCode, g.MasterNickname())
}

// WordGuessed 处理"词已被猜中"信号，把游戏推进到投票阶段
func (cs *ChatService) WordGuessed(userID, roomCode string) {
	room := cs.lookupRoom(roomCode)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.member(userID) == nil || room.Game == nil {
		return
	}

	if !room.Game.MarkWordGuessed(time.Now()) {
		// 阶段已经变了，陈旧信号直接忽略
		return
	}

	cs.announceVoting(room, "The word has been guessed! Vote for who you think the Insider is.")

	zap.S().Infof("房间 %s 谜底被猜中，进入投票阶段", roomCode)
}

// SubmitVote 记录一票；全员投完立即结算，否则广播投票进度
func (cs *ChatService) SubmitVote(userID, roomCode, votedFor string) {
	room := cs.lookupRoom(roomCode)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	voter := room.member(userID)
	if voter == nil || room.Game == nil {
		return
	}

	if !room.Game.CastVote(voter.Nickname, votedFor) {
		return
	}

	// 当前全体成员（而非开局名单）都投过票就不再等待截止时间
	if room.Game.VoterCount() >= len(room.Users) {
		cs.resolveVotingLocked(room)
		return
	}

	room.broadcast(dto.WrapResponse(
		dto.RESP_GAME_STATE,
		dto.GameStateUpdateResponse{Game: room.Game.Snapshot()},
	))
}

// announceVoting 广播进入投票阶段的状态和通知，调用方必须持有房间锁
func (cs *ChatService) announceVoting(room *Room, text string) {
	room.broadcast(dto.WrapResponse(
		dto.RESP_GAME_STATE,
		dto.GameStateUpdateResponse{Game: room.Game.Snapshot()},
	))

	notif := room.appendNotification(text)

	room.broadcast(dto.WrapResponse(
		dto.RESP_NEW_MESSAGE,
		dto.NewMessageResponse{Message: notif},
	))
}

// resolveVotingLocked 结算投票并公布结果，调用方必须持有房间锁
func (cs *ChatService) resolveVotingLocked(room *Room) {
	outcome := room.Game.Resolve()

	notif := room.appendNotification(outcome.Text())

	room.broadcast(dto.WrapResponse(
		dto.RESP_NEW_MESSAGE,
		dto.NewMessageResponse{Message: notif},
	))

	room.broadcast(dto.WrapResponse(
		dto.RESP_GAME_STATE,
		dto.GameStateUpdateResponse{Game: room.Game.Snapshot()},
	))

	zap.S().Infof("房间 %s 本局结束：%s", room.Code, outcome.Text())
}
