package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/telegram/message/html"
	"github.com/gotd/td/tg"

	"gifts_buyer/internal/domain/entity"
)

// SendText posts an HTML message from the user account without link previews.
func (c *Client) SendText(ctx context.Context, to entity.PeerRef, text string) error {
	input, err := c.resolve(ctx, to)
	if err != nil {
		return err
	}

	if _, err := c.sender.To(input).NoWebpage().StyledText(ctx, html.String(c.mentionUser, text)); err != nil {
		return fmt.Errorf("send message to %s: %w", to, err)
	}

	return nil
}

// mentionUser turns tg://user?id= links into mentions using cached hashes.
func (c *Client) mentionUser(id int64) (tg.InputUserClass, error) {
	if entry, ok := c.peers.lookupID(id); ok {
		if u, ok := entry.input.(*tg.InputPeerUser); ok {
			return &tg.InputUser{UserID: u.UserID, AccessHash: u.AccessHash}, nil
		}
	}

	return &tg.InputUser{UserID: id}, nil
}
