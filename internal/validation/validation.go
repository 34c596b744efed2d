package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"insider-chat-be/internal/service/dto"
)

// 边界校验：所有入参先经过这里，不合法的请求不会进入核心逻辑

const (
	NICKNAME_MIN_LEN    = 2
	NICKNAME_MAX_LEN    = 20
	ROOM_CODE_LEN       = 6
	MESSAGE_MAX_LEN     = 200
	TARGET_WORD_MAX_LEN = 50
)

var (
	nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	roomCodePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

func Nickname(raw string) (string, error) {
	nickname := strings.TrimSpace(raw)

	if utf8.RuneCountInString(nickname) < NICKNAME_MIN_LEN {
		return "", errors.New("Nickname must be at least 2 characters long.")
	}

	if utf8.RuneCountInString(nickname) > NICKNAME_MAX_LEN {
		return "", errors.New("Nickname cannot be more than 20 characters long.")
	}

	if !nicknamePattern.MatchString(nickname) {
		return "", errors.New("Nickname can only contain letters, numbers, and underscores.")
	}

	return nickname, nil
}

func RoomCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)

	if len(code) != ROOM_CODE_LEN {
		return "", errors.New("Room code must be exactly 6 characters long.")
	}

	if !roomCodePattern.MatchString(code) {
		return "", errors.New("Room code must be alphanumeric.")
	}

	return code, nil
}

func MessageContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)

	if content == "" {
		return "", errors.New("Message can't be empty.")
	}

	if utf8.RuneCountInString(content) > MESSAGE_MAX_LEN {
		return "", errors.New("Message cannot be longer than 200 characters.")
	}

	return content, nil
}

func TargetWord(raw string) (string, error) {
	word := strings.TrimSpace(raw)

	if word == "" {
		return "", errors.New("The secret word can't be empty.")
	}

	if utf8.RuneCountInString(word) > TARGET_WORD_MAX_LEN {
		return "", errors.New("The secret word cannot be longer than 50 characters.")
	}

	return word, nil
}

// MessageType 把客户端传来的消息类型归一化，未知类型一律按普通用户消息处理
func MessageType(raw string) string {
	switch raw {
	case dto.MSG_TYPE_USER,
		dto.MSG_TYPE_QUESTION,
		dto.MSG_TYPE_ANSWER,
		dto.MSG_TYPE_GUESS:
		return raw
	default:
		return dto.MSG_TYPE_USER
	}
}
