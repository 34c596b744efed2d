package dto

// 对外广播的游戏状态快照
// 注意：不包含谜底词和角色分配表，这两者只通过 role-assigned 单播下发
type GameSnapshot struct {
	Phase  string `json:"phase"`
	Master string `json:"master,omitempty"`
	// 阶段截止时间，毫秒级 Unix 时间戳，客户端据此倒计时
	QuestionPhaseEnd int64 `json:"questionPhaseEnd,omitempty"`
	VotingPhaseEnd   int64 `json:"votingPhaseEnd,omitempty"`
	// key: 投票者昵称, value: 被投者昵称
	Votes       map[string]string `json:"votes"`
	WordGuessed bool              `json:"wordGuessed"`
}
