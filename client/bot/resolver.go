package bot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/krelay/kwrelay-bot/pkg/chatref"
	"github.com/krelay/kwrelay-bot/pkg/resolve"
)

var notFoundErrors = []string{
	"USERNAME_NOT_OCCUPIED",
	"USERNAME_INVALID",
	"PEER_ID_INVALID",
	"CHANNEL_PRIVATE",
	"INVITE_HASH_EXPIRED",
	"INVITE_HASH_INVALID",
}

// Resolver returns the live chat-reference resolver backed by the bot
// session. It must not be used before Init has completed.
func Resolver() resolve.Resolver {
	return resolve.Func(resolveRef)
}

func resolveRef(ctx context.Context, raw string) (int64, error) {
	ref, err := chatref.Normalize(raw)
	if err != nil {
		return 0, err
	}
	switch ref.Kind {
	case chatref.KindID:
		return ref.ID, nil
	case chatref.KindUsername:
		chat, err := ectx.ResolveUsername(ref.Username)
		if err != nil {
			return 0, classifyResolveError(err)
		}
		if chat == nil || chat.GetID() == 0 {
			return 0, fmt.Errorf("%w: %s", resolve.ErrNotFound, raw)
		}
		return chat.GetID(), nil
	case chatref.KindInvite:
		invite, err := ectx.Raw.MessagesCheckChatInvite(ctx, ref.Invite)
		if err != nil {
			return 0, classifyResolveError(err)
		}
		switch v := invite.(type) {
		case *tg.ChatInviteAlready:
			return v.Chat.GetID(), nil
		case *tg.ChatInvitePeek:
			return v.Chat.GetID(), nil
		}
		// a bare ChatInvite means the bot has not joined, so there is
		// no resolvable id behind the link
		return 0, fmt.Errorf("%w: not a member of %s", resolve.ErrNotFound, raw)
	}
	return 0, chatref.ErrInvalidFormat
}

func classifyResolveError(err error) error {
	if wait, ok := tgerr.AsFloodWait(err); ok {
		return &resolve.RateLimitedError{RetryAfter: wait}
	}
	if tgerr.Is(err, notFoundErrors...) {
		return fmt.Errorf("%w: %v", resolve.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", resolve.ErrTransient, err)
}
