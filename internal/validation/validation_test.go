package validation

import (
	"strings"
	"testing"

	"insider-chat-be/internal/service/dto"
)

func TestNickname(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Alice", "Alice", false},
		{"valid with underscore", "player_1", "player_1", false},
		{"trims whitespace", "  Bob  ", "Bob", false},
		{"too short", "A", "", true},
		{"too long", strings.Repeat("a", 21), "", true},
		{"max length ok", strings.Repeat("a", 20), strings.Repeat("a", 20), false},
		{"invalid characters", "Alice!", "", true},
		{"spaces inside", "Ali ce", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Nickname(tc.input)

			if tc.wantErr {
				if err == nil {
					t.Fatalf("Nickname(%q) should fail", tc.input)
				}
				return
			}

			if err != nil {
				t.Fatalf("Nickname(%q) failed: %v", tc.input, err)
			}

			if got != tc.want {
				t.Fatalf("Nickname(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRoomCode(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "ABC123", false},
		{"valid lowercase", "abc123", false},
		{"too short", "ABC12", true},
		{"too long", "ABC1234", true},
		{"non-alphanumeric", "ABC-12", true},
		{"empty", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RoomCode(tc.input)

			if tc.wantErr && err == nil {
				t.Fatalf("RoomCode(%q) should fail", tc.input)
			}

			if !tc.wantErr && err != nil {
				t.Fatalf("RoomCode(%q) failed: %v", tc.input, err)
			}
		})
	}
}

func TestMessageContent(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "hello", "hello", false},
		{"trims whitespace", "  hi  ", "hi", false},
		{"only whitespace", "   ", "", true},
		{"empty", "", "", true},
		{"too long", strings.Repeat("a", 201), "", true},
		{"max length ok", strings.Repeat("a", 200), strings.Repeat("a", 200), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MessageContent(tc.input)

			if tc.wantErr {
				if err == nil {
					t.Fatalf("MessageContent(%q) should fail", tc.input)
				}
				return
			}

			if err != nil {
				t.Fatalf("MessageContent(%q) failed: %v", tc.input, err)
			}

			if got != tc.want {
				t.Fatalf("MessageContent(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestMessageType(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{dto.MSG_TYPE_USER, dto.MSG_TYPE_USER},
		{dto.MSG_TYPE_QUESTION, dto.MSG_TYPE_QUESTION},
		{dto.MSG_TYPE_ANSWER, dto.MSG_TYPE_ANSWER},
		{dto.MSG_TYPE_GUESS, dto.MSG_TYPE_GUESS},
		// 通知类型是服务器专用的，客户端冒充会被归一化
		{dto.MSG_TYPE_NOTIFICATION, dto.MSG_TYPE_USER},
		{"", dto.MSG_TYPE_USER},
		{"bogus", dto.MSG_TYPE_USER},
	}

	for _, tc := range cases {
		if got := MessageType(tc.input); got != tc.want {
			t.Fatalf("MessageType(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTargetWord(t *testing.T) {
	if _, err := TargetWord("  "); err == nil {
		t.Fatalf("blank target word should fail")
	}

	if _, err := TargetWord(strings.Repeat("a", 51)); err == nil {
		t.Fatalf("overlong target word should fail")
	}

	got, err := TargetWord(" PIANO ")
	if err != nil {
		t.Fatalf("TargetWord failed: %v", err)
	}

	if got != "PIANO" {
		t.Fatalf("TargetWord should trim, got %q", got)
	}
}
