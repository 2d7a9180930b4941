package notifier

import (
	"context"

	"gifts_buyer/internal/domain/entity"
)

// PeerTextSender posts text to an arbitrary peer, as the user account does.
type PeerTextSender interface {
	SendText(ctx context.Context, to entity.PeerRef, text string) error
}

// AccountChannel sends notifications from the logged in user account.
type AccountChannel struct {
	client PeerTextSender
	to     entity.PeerRef
}

func NewAccountChannel(client PeerTextSender, to entity.PeerRef) *AccountChannel {
	return &AccountChannel{
		client: client,
		to:     to,
	}
}

func (a *AccountChannel) SendText(ctx context.Context, text string) error {
	return a.client.SendText(ctx, a.to, text)
}
