package bot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/krelay/kwrelay-bot/relay"
)

var invalidDestErrors = []string{
	"PEER_ID_INVALID",
	"CHAT_ID_INVALID",
	"CHANNEL_PRIVATE",
	"CHAT_WRITE_FORBIDDEN",
	"USER_BANNED_IN_CHANNEL",
	"CHAT_ADMIN_REQUIRED",
}

// Forwarder forwards messages through the bot session.
type Forwarder struct{}

func (Forwarder) Forward(ctx context.Context, fromChat int64, messageID int, toChat int64) error {
	_, err := ectx.ForwardMessages(fromChat, toChat, &tg.MessagesForwardMessagesRequest{
		ID: []int{messageID},
	})
	if err == nil {
		return nil
	}
	if wait, ok := tgerr.AsFloodWait(err); ok {
		return &relay.RateLimitedError{RetryAfter: wait}
	}
	if tgerr.Is(err, invalidDestErrors...) {
		return fmt.Errorf("%w: %v", relay.ErrInvalidDestination, err)
	}
	return err
}
