package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"insider-chat-be/internal/service/dto"
)

// 游戏阶段状态机：
// question -> voting -> finished
// question 到 voting 既可以由"词已被猜中"显式触发，也可以由提问阶段超时强制触发；
// 任意进行中的阶段在有成员断线时进入 paused；
// paused 和 finished 只能被一局全新的游戏整体替换，没有其他出路
const (
	PHASE_QUESTION = "question"
	PHASE_VOTING   = "voting"
	PHASE_FINISHED = "finished"
	PHASE_PAUSED   = "paused"
)

// 玩家身份
const (
	ROLE_MASTER  = "Master"
	ROLE_INSIDER = "Insider"
	ROLE_COMMON  = "Common"
)

const (
	// 开局所需的最少人数
	MIN_PLAYERS = 4

	// 提问阶段时长
	QUESTION_PHASE_DURATION = 5 * time.Minute
	// 投票阶段时长
	VOTING_PHASE_DURATION = time.Minute
)

var ErrInsufficientPlayers = errors.New("You need at least 4 players to start the Insider game.")

// Game 归属于它的房间，同一时刻一个房间至多一局
type Game struct {
	Phase      string
	TargetWord string
	// key: 昵称, value: 身份，开局时固定，中途加入的成员没有身份
	Roles       map[string]string
	QuestionEnd time.Time
	VotingEnd   time.Time
	WordGuessed bool

	master  string
	insider string

	// 每人一票，后投覆盖先投；voteOrder 记录首次投票顺序，计票平局时先投先得
	votes     map[string]string
	voteOrder []string
}

// NewGame 开始新的一局
// members 按加入顺序排列，members[0] 即房主，固定成为 Master；
// Insider 在其余成员中等概率随机抽取，剩下的都是 Common
func NewGame(members []string, targetWord string, now time.Time) (*Game, error) {
	if len(members) < MIN_PLAYERS {
		return nil, ErrInsufficientPlayers
	}

	g := &Game{
		Phase:       PHASE_QUESTION,
		TargetWord:  targetWord,
		Roles:       make(map[string]string, len(members)),
		QuestionEnd: now.Add(QUESTION_PHASE_DURATION),
		votes:       make(map[string]string),
		voteOrder:   make([]string, 0, len(members)),
	}

	g.master = members[0]
	g.Roles[g.master] = ROLE_MASTER

	// 从非房主成员中抽取 Insider
	insiderIdx := 1 + rand.IntN(len(members)-1)
	g.insider = members[insiderIdx]

	for _, nickname := range members[1:] {
		if nickname == g.insider {
			g.Roles[nickname] = ROLE_INSIDER
		} else {
			g.Roles[nickname] = ROLE_COMMON
		}
	}

	return g, nil
}

func (g *Game) MasterNickname() string {
	return g.master
}

func (g *Game) InsiderNickname() string {
	return g.insider
}

func (g *Game) RoleOf(nickname string) string {
	return g.Roles[nickname]
}

// Active 判断这局游戏是否还在进行中
func (g *Game) Active() bool {
	return g.Phase == PHASE_QUESTION || g.Phase == PHASE_VOTING
}

// BeginVoting 从提问阶段切入投票阶段，其他阶段下调用是无效操作
func (g *Game) BeginVoting(now time.Time) bool {
	if g.Phase != PHASE_QUESTION {
		return false
	}

	g.Phase = PHASE_VOTING
	g.VotingEnd = now.Add(VOTING_PHASE_DURATION)

	return true
}

// MarkWordGuessed 处理"词已被猜中"信号，随即进入投票阶段
func (g *Game) MarkWordGuessed(now time.Time) bool {
	if !g.BeginVoting(now) {
		return false
	}

	g.WordGuessed = true

	return true
}

// Pause 在成员断线时冻结这局游戏，只对进行中的阶段有效
func (g *Game) Pause() bool {
	if !g.Active() {
		return false
	}

	g.Phase = PHASE_PAUSED

	return true
}

// CastVote 记录一票，重复投票视为改票
func (g *Game) CastVote(voter, target string) bool {
	if g.Phase != PHASE_VOTING {
		return false
	}

	if _, voted := g.votes[voter]; !voted {
		g.voteOrder = append(g.voteOrder, voter)
	}

	g.votes[voter] = target

	return true
}

func (g *Game) VoterCount() int {
	return len(g.votes)
}

// Outcome 是一局游戏的判定结果
type Outcome struct {
	Accused       string
	Insider       string
	Word          string
	WordGuessed   bool
	InsiderCaught bool
}

// Text 生成对外公布的结算文案
func (o Outcome) Text() string {
	if !o.WordGuessed {
		return fmt.Sprintf(
			"The word was never guessed, so everyone loses. The word was %q.",
			o.Word,
		)
	}

	if o.InsiderCaught {
		return fmt.Sprintf(
			"%s was the Insider and has been caught! Commons and Master win!",
			o.Insider,
		)
	}

	if o.Accused == "" {
		return fmt.Sprintf(
			"Nobody was accused. The Insider was %s and wins! The word was %q.",
			o.Insider, o.Word,
		)
	}

	return fmt.Sprintf(
		"%s was accused, but the Insider was %s. The Insider wins! The word was %q.",
		o.Accused, o.Insider, o.Word,
	)
}

// Resolve 结束投票并判定胜负，由满票或投票阶段超时触发
// 计票取得票数严格最高者，平票时先被投到的一方胜出（按 voteOrder 保证确定性）
func (g *Game) Resolve() Outcome {
	g.Phase = PHASE_FINISHED

	counts := make(map[string]int, len(g.votes))
	targets := make([]string, 0, len(g.votes))

	for _, voter := range g.voteOrder {
		target := g.votes[voter]
		if counts[target] == 0 {
			targets = append(targets, target)
		}
		counts[target]++
	}

	var accused string
	maxVotes := 0

	for _, target := range targets {
		if counts[target] > maxVotes {
			maxVotes = counts[target]
			accused = target
		}
	}

	return Outcome{
		Accused:       accused,
		Insider:       g.insider,
		Word:          g.TargetWord,
		WordGuessed:   g.WordGuessed,
		InsiderCaught: g.WordGuessed && accused == g.insider,
	}
}

// Snapshot 导出可以广播给全房间的游戏状态
// 谜底词和身份表被刻意排除，只有 Master 的昵称是公开信息
func (g *Game) Snapshot() *dto.GameSnapshot {
	snapshot := &dto.GameSnapshot{
		Phase:       g.Phase,
		Master:      g.master,
		Votes:       make(map[string]string, len(g.votes)),
		WordGuessed: g.WordGuessed,
	}

	if !g.QuestionEnd.IsZero() {
		snapshot.QuestionPhaseEnd = g.QuestionEnd.UnixMilli()
	}

	if !g.VotingEnd.IsZero() {
		snapshot.VotingPhaseEnd = g.VotingEnd.UnixMilli()
	}

	for voter, target := range g.votes {
		snapshot.Votes[voter] = target
	}

	return snapshot
}
