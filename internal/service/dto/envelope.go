package dto

import (
	"encoding/json"

	"go.uber.org/zap"
)

// 请求类型
const (
	REQ_JOIN_ROOM    = "join-room"
	REQ_SEND_MESSAGE = "send-message"
	REQ_START_GAME   = "start-game"
	REQ_WORD_GUESSED = "word-guessed"
	REQ_SUBMIT_VOTE  = "submit-vote"
)

type RequestWrapper struct {
	ReqType string          `json:"request_type"`
	Data    json.RawMessage `json:"data"`
}

func TryUnwrapJoinRoomRequest(wrapper RequestWrapper) *JoinRoomRequest {
	if wrapper.ReqType != REQ_JOIN_ROOM {
		return nil
	}

	var joinRoomRequest JoinRoomRequest

	err := json.Unmarshal(wrapper.Data, &joinRoomRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap JoinRoomRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &joinRoomRequest
}

func TryUnwrapSendMessageRequest(wrapper RequestWrapper) *SendMessageRequest {
	if wrapper.ReqType != REQ_SEND_MESSAGE {
		return nil
	}

	var sendMessageRequest SendMessageRequest

	err := json.Unmarshal(wrapper.Data, &sendMessageRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap SendMessageRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &sendMessageRequest
}

func TryUnwrapStartGameRequest(wrapper RequestWrapper) *StartGameRequest {
	if wrapper.ReqType != REQ_START_GAME {
		return nil
	}

	var startGameRequest StartGameRequest

	err := json.Unmarshal(wrapper.Data, &startGameRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap StartGameRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &startGameRequest
}

func TryUnwrapWordGuessedRequest(wrapper RequestWrapper) *WordGuessedRequest {
	if wrapper.ReqType != REQ_WORD_GUESSED {
		return nil
	}

	// word-guessed 不携带任何负载，data 可以为空
	return &WordGuessedRequest{}
}

func TryUnwrapSubmitVoteRequest(wrapper RequestWrapper) *SubmitVoteRequest {
	if wrapper.ReqType != REQ_SUBMIT_VOTE {
		return nil
	}

	var submitVoteRequest SubmitVoteRequest

	err := json.Unmarshal(wrapper.Data, &submitVoteRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap SubmitVoteRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &submitVoteRequest
}

// 响应类型
const (
	RESP_JOIN_SUCCESS  = "join-success"
	RESP_JOIN_ERROR    = "join-error"
	RESP_USER_LIST     = "user-list-update"
	RESP_NEW_MESSAGE   = "new-message"
	RESP_GAME_STATE    = "game-state-update"
	RESP_ROLE_ASSIGNED = "role-assigned"
	RESP_GAME_ERROR    = "game-error"
)

type ResponseWrapper struct {
	RespType string `json:"response_type"`
	Data     any    `json:"data,omitempty"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		RespType: respType,
		Data:     data,
	}
}

func WrapJoinError(reason string) ResponseWrapper {
	return WrapResponse(RESP_JOIN_ERROR, ErrorResponse{Reason: reason})
}

func WrapGameError(reason string) ResponseWrapper {
	return WrapResponse(RESP_GAME_ERROR, ErrorResponse{Reason: reason})
}
