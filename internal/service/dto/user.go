package dto

// 房间内的用户信息，ID 为连接级身份，昵称在房间内唯一
type User struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}
