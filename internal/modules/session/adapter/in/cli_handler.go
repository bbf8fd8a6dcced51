package in

import (
	"context"

	sessiondto "worklog/internal/modules/session/dto"
	sessionin "worklog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, userID, channelID, category string) (sessiondto.SessionOutput, error) {
	return h.usecase.StartWork(ctx, sessiondto.StartWorkInput{UserID: userID, ChannelID: channelID, Category: category})
}

func (h CLIHandler) Break(ctx context.Context, userID string) (sessiondto.SessionOutput, error) {
	return h.usecase.StartBreak(ctx, userID, userID)
}

func (h CLIHandler) Resume(ctx context.Context, userID string) (sessiondto.SessionOutput, error) {
	return h.usecase.EndBreak(ctx, userID, userID)
}

func (h CLIHandler) End(ctx context.Context, userID string) (sessiondto.EndWorkOutput, error) {
	return h.usecase.EndWork(ctx, userID, userID)
}

func (h CLIHandler) Status(ctx context.Context, userID string) (sessiondto.SessionOutput, error) {
	return h.usecase.Status(ctx, userID)
}
