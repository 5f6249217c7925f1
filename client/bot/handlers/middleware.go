package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/krelay/kwrelay-bot/common/i18n"
	"github.com/krelay/kwrelay-bot/common/i18n/i18nk"
)

func isAdmin(userID int64) bool {
	return slice.Contain(deps.Admins, userID)
}

func checkPermission(ctx *ext.Context, update *ext.Update) error {
	userID := update.GetUserChat().GetID()
	if !isAdmin(userID) {
		ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgDenied)), nil)
		return dispatcher.EndGroups
	}
	return dispatcher.ContinueGroups
}
