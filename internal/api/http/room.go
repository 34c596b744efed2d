package http

import (
	"insider-chat-be/internal/service"
	"insider-chat-be/internal/service/dto"
	"insider-chat-be/internal/state"
	"insider-chat-be/internal/validation"

	"github.com/kataras/iris/v12"
)

// CreateRoom 只负责分配一个新的房间编码
// 房间本体由随后第一个携带创建意图的 join-room 建立
func CreateRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.CreateRoomRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "Invalid request body.",
			})
			return
		}

		if _, err := validation.Nickname(req.Nickname); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(dto.CreateRoomResponse{
			RoomCode: service.GenRoomCode(),
		})
	}
}
