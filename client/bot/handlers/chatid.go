package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/krelay/kwrelay-bot/common/i18n"
	"github.com/krelay/kwrelay-bot/common/i18n/i18nk"
)

func handleChatIDCmd(ctx *ext.Context, update *ext.Update) error {
	ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgCurrentChatID, map[string]any{
		"ID": update.EffectiveChat().GetID(),
	})), nil)
	return dispatcher.EndGroups
}
