package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/krelay/kwrelay-bot/client/bot/handlers/utils/msgelem"
	"github.com/krelay/kwrelay-bot/common/i18n"
	"github.com/krelay/kwrelay-bot/common/i18n/i18nk"
)

func handleStartCmd(ctx *ext.Context, update *ext.Update) error {
	userID := update.GetUserChat().GetID()
	deps.Dialog.ShowMenu(userID)
	ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgMenu)), &ext.ReplyOpts{
		Markup: msgelem.BuildMenuMarkup(),
	})
	return dispatcher.EndGroups
}

func handleCancelCmd(ctx *ext.Context, update *ext.Update) error {
	userID := update.GetUserChat().GetID()
	deps.Dialog.Cancel(userID)
	ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgCancelled)), nil)
	return dispatcher.EndGroups
}
