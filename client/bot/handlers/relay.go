package handlers

import (
	"strconv"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/gotd/td/tg"
	"github.com/krelay/kwrelay-bot/relay"
)

// handleWatchedMessage feeds group and channel messages into the relay
// engine. Filtering against the watch list happens there, not here.
func handleWatchedMessage(ctx *ext.Context, update *ext.Update) error {
	msg := update.EffectiveMessage
	if msg == nil {
		return dispatcher.EndGroups
	}
	ev := relay.Inbound{
		ChatID:    update.EffectiveChat().GetID(),
		MessageID: msg.ID,
		Text:      msg.Text,
	}
	if from, ok := msg.GetFromID(); ok {
		if peer, ok := from.(*tg.PeerUser); ok {
			ev.Sender = strconv.FormatInt(peer.UserID, 10)
		}
	}
	deps.Relay.Submit(ev)
	return dispatcher.EndGroups
}
