package service

import (
	"regexp"
	"testing"

	"insider-chat-be/internal/service/dto"
)

func TestGenRoomCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-zA-Z0-9]{6}$`)

	for i := 0; i < 100; i++ {
		code := GenRoomCode()
		if !pattern.MatchString(code) {
			t.Fatalf("room code should be 6 alphanumeric characters, got %q", code)
		}
	}
}

func TestAppendMessage_AssignsSequentialIDs(t *testing.T) {
	room := newRoom("ABC123")

	first := room.appendMessage(dto.Message{Type: dto.MSG_TYPE_USER, Content: "one"})
	second := room.appendMessage(dto.Message{Type: dto.MSG_TYPE_USER, Content: "two"})

	if first.ID != "ABC123-1" || second.ID != "ABC123-2" {
		t.Fatalf("message IDs should combine room code and sequence, got %q, %q", first.ID, second.ID)
	}

	if first.ID == second.ID {
		t.Fatalf("message IDs must be unique within a room")
	}
}

func TestSendResp_DropsWhenChannelFull(t *testing.T) {
	u := &User{
		ID:       "u1",
		Nickname: "Alice",
		RespCh:   make(chan dto.ResponseWrapper, 1),
	}

	sendResp(u, dto.WrapResponse(dto.RESP_NEW_MESSAGE, nil))

	// 通道已满，这次发送必须丢弃而不是阻塞
	sendResp(u, dto.WrapResponse(dto.RESP_NEW_MESSAGE, nil))

	if len(u.RespCh) != 1 {
		t.Fatalf("full channel should drop the response, got %d buffered", len(u.RespCh))
	}
}
