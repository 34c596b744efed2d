package service

import (
	"time"

	"insider-chat-be/internal/service/game"

	"go.uber.org/zap"
)

// 定时扫描的粒度
const SWEEP_INTERVAL = time.Second

// StartPhaseSweeps 启动两个进程级的定时扫描：
// 一个把超时且没猜中词的提问阶段强制推进到投票，另一个结算超时的投票阶段。
// 两个扫描都只在进程启动时注册一次，按房间加锁后先验阶段再动手，
// 对并发下已经离开触发阶段的游戏天然幂等
func (cs *ChatService) StartPhaseSweeps() {
	go cs.sweepLoop(cs.sweepQuestionPhase)
	go cs.sweepLoop(cs.sweepVotingPhase)
}

func (cs *ChatService) sweepLoop(sweep func(now time.Time)) {
	ticker := time.NewTicker(SWEEP_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-cs.sweepDone:
			return

		case now := <-ticker.C:
			sweep(now)
		}
	}
}

// snapshotRooms 在注册表读锁下复制房间列表，扫描时逐个房间加锁处理
func (cs *ChatService) snapshotRooms() []*Room {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	rooms := make([]*Room, 0, len(cs.rooms))
	for _, room := range cs.rooms {
		rooms = append(rooms, room)
	}

	return rooms
}

func (cs *ChatService) sweepQuestionPhase(now time.Time) {
	for _, room := range cs.snapshotRooms() {
		room.mu.Lock()

		g := room.Game
		if g != nil && !g.WordGuessed && now.After(g.QuestionEnd) && g.BeginVoting(now) {
			cs.announceVoting(room, "Time's up! The word was not guessed. Vote for who you think the Insider is.")

			zap.S().Infof("房间 %s 提问阶段超时，强制进入投票", room.Code)
		}

		room.mu.Unlock()
	}
}

func (cs *ChatService) sweepVotingPhase(now time.Time) {
	for _, room := range cs.snapshotRooms() {
		room.mu.Lock()

		g := room.Game
		if g != nil && g.Phase == game.PHASE_VOTING && now.After(g.VotingEnd) {
			cs.resolveVotingLocked(room)

			zap.S().Infof("房间 %s 投票阶段超时，直接结算", room.Code)
		}

		room.mu.Unlock()
	}
}
