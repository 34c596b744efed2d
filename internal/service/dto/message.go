package dto

// 消息类型
const (
	MSG_TYPE_USER         = "user"
	MSG_TYPE_NOTIFICATION = "notification"
	MSG_TYPE_QUESTION     = "question"
	MSG_TYPE_ANSWER       = "answer"
	MSG_TYPE_GUESS        = "guess"
)

// 房间消息，一经追加不可修改
// ID 由房间编码加上房间内单调递增的序号构成，保证房间内唯一
type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	// 用户消息的正文
	Content string `json:"content,omitempty"`
	// 系统通知的正文
	Text      string `json:"text,omitempty"`
	Sender    string `json:"sender,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
