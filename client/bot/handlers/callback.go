package handlers

import (
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"
	"github.com/krelay/kwrelay-bot/client/bot/handlers/utils/msgelem"
	"github.com/krelay/kwrelay-bot/common/cache"
	"github.com/krelay/kwrelay-bot/common/i18n"
	"github.com/krelay/kwrelay-bot/common/i18n/i18nk"
	"github.com/krelay/kwrelay-bot/dialog"
	"github.com/krelay/kwrelay-bot/pkg/tcbdata"
)

func checkCallbackPermission(ctx *ext.Context, update *ext.Update) bool {
	if isAdmin(update.CallbackQuery.GetUserID()) {
		return true
	}
	ctx.AnswerCallback(msgelem.AlertCallbackAnswer(update.CallbackQuery.GetQueryID(), i18n.T(i18nk.MsgDenied)))
	return false
}

func editCallbackMessage(ctx *ext.Context, update *ext.Update, text string, markup tg.ReplyMarkupClass) {
	req := &tg.MessagesEditMessageRequest{
		ID:      update.CallbackQuery.GetMsgID(),
		Message: text,
	}
	if markup != nil {
		req.ReplyMarkup = markup
	}
	if _, err := ctx.EditMessage(update.CallbackQuery.GetUserID(), req); err != nil {
		log.FromContext(ctx).Errorf("failed to edit message: %s", err)
	}
	ctx.AnswerCallback(&tg.MessagesSetBotCallbackAnswerRequest{
		QueryID: update.CallbackQuery.GetQueryID(),
	})
}

func handleMenuCallback(ctx *ext.Context, update *ext.Update) error {
	if !checkCallbackPermission(ctx, update) {
		return dispatcher.EndGroups
	}
	deps.Dialog.ShowMenu(update.CallbackQuery.GetUserID())
	editCallbackMessage(ctx, update, i18n.T(i18nk.MsgMenu), msgelem.BuildMenuMarkup())
	return dispatcher.EndGroups
}

func handleCancelCallback(ctx *ext.Context, update *ext.Update) error {
	if !checkCallbackPermission(ctx, update) {
		return dispatcher.EndGroups
	}
	deps.Dialog.Cancel(update.CallbackQuery.GetUserID())
	editCallbackMessage(ctx, update, i18n.T(i18nk.MsgCancelled), msgelem.BuildBackMarkup())
	return dispatcher.EndGroups
}

func handleActionCallback(ctx *ext.Context, update *ext.Update) error {
	if !checkCallbackPermission(ctx, update) {
		return dispatcher.EndGroups
	}
	userID := update.CallbackQuery.GetUserID()
	action := strings.Fields(string(update.CallbackQuery.Data))[0]
	switch action {
	case tcbdata.TypeListChats:
		editCallbackMessage(ctx, update, msgelem.BuildChatListText(deps.Registry.ListChats()), msgelem.BuildBackMarkup())
	case tcbdata.TypeListKeywords:
		editCallbackMessage(ctx, update, msgelem.BuildKeywordListText(deps.Registry.ListKeywords()), msgelem.BuildBackMarkup())
	case tcbdata.TypeChatID:
		ctx.AnswerCallback(msgelem.AlertCallbackAnswer(update.CallbackQuery.GetQueryID(), i18n.T(i18nk.MsgCurrentChatID, map[string]any{
			"ID": userID,
		})))
	case tcbdata.TypeAddChat:
		deps.Dialog.Arm(userID, dialog.InputAddChat)
		editCallbackMessage(ctx, update, i18n.T(i18nk.PromptAddChat), msgelem.BuildCancelMarkup())
	case tcbdata.TypeRemoveChat:
		deps.Dialog.Arm(userID, dialog.InputRemoveChat)
		editCallbackMessage(ctx, update, i18n.T(i18nk.PromptRemoveChat), msgelem.BuildCancelMarkup())
	case tcbdata.TypeAddKeyword:
		deps.Dialog.Arm(userID, dialog.InputAddKeyword)
		editCallbackMessage(ctx, update, i18n.T(i18nk.PromptAddKeyword), msgelem.BuildCancelMarkup())
	case tcbdata.TypeRemoveKeyword:
		deps.Dialog.Arm(userID, dialog.InputRemoveKeyword)
		editCallbackMessage(ctx, update, i18n.T(i18nk.PromptRemoveKeyword), msgelem.BuildCancelMarkup())
	case tcbdata.TypeResolve:
		deps.Dialog.Arm(userID, dialog.InputResolveOnly)
		editCallbackMessage(ctx, update, i18n.T(i18nk.PromptResolve), msgelem.BuildCancelMarkup())
	default:
		ctx.AnswerCallback(msgelem.AlertCallbackAnswer(update.CallbackQuery.GetQueryID(), i18n.T(i18nk.MsgDataExpired)))
	}
	return dispatcher.EndGroups
}

func handleStemCallback(ctx *ext.Context, update *ext.Update) error {
	if !checkCallbackPermission(ctx, update) {
		return dispatcher.EndGroups
	}
	userID := update.CallbackQuery.GetUserID()
	parts := strings.Fields(string(update.CallbackQuery.Data))
	if len(parts) < 2 {
		ctx.AnswerCallback(msgelem.AlertCallbackAnswer(update.CallbackQuery.GetQueryID(), i18n.T(i18nk.MsgDataExpired)))
		return dispatcher.EndGroups
	}
	dataid := parts[1]
	choice, ok := cache.Get[tcbdata.StemChoice](dataid)
	if !ok {
		ctx.AnswerCallback(msgelem.AlertCallbackAnswer(update.CallbackQuery.GetQueryID(), i18n.T(i18nk.MsgDataExpired)))
		return dispatcher.EndGroups
	}
	sess, ok := deps.Dialog.ConsumeStemChoice(userID)
	if !ok || sess.Term != choice.Term {
		// the pending question was superseded or timed out; this press
		// belongs to a stale keyboard
		ctx.AnswerCallback(msgelem.AlertCallbackAnswer(update.CallbackQuery.GetQueryID(), i18n.T(i18nk.MsgDataExpired)))
		return dispatcher.EndGroups
	}
	cache.Del(dataid)
	added, err := deps.Registry.AddKeyword(ctx, choice.Term, choice.ApplyStemming)
	if err != nil {
		editCallbackMessage(ctx, update, keywordAddErrorText(choice.Term, err), msgelem.BuildBackMarkup())
		return dispatcher.EndGroups
	}
	editCallbackMessage(ctx, update, i18n.T(i18nk.MsgKeywordAdded, map[string]any{
		"Terms": msgelem.JoinTerms(added),
	}), msgelem.BuildBackMarkup())
	return dispatcher.EndGroups
}
