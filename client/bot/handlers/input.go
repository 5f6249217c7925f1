package handlers

import (
	"errors"
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/krelay/kwrelay-bot/client/bot/handlers/utils/msgelem"
	"github.com/krelay/kwrelay-bot/common/i18n"
	"github.com/krelay/kwrelay-bot/common/i18n/i18nk"
	"github.com/krelay/kwrelay-bot/dialog"
	"github.com/krelay/kwrelay-bot/registry"
)

// handleDialogInput consumes a free-text message for whichever flow is
// armed for the user. Messages with no armed flow fall through untouched.
func handleDialogInput(ctx *ext.Context, update *ext.Update) error {
	userID := update.GetUserChat().GetID()
	sess, ok := deps.Dialog.ConsumeInput(userID)
	if !ok {
		return dispatcher.EndGroups
	}
	text := strings.TrimSpace(update.EffectiveMessage.Text)
	switch sess.Kind {
	case dialog.InputAddChat:
		return handleAddChatInput(ctx, update, text)
	case dialog.InputRemoveChat:
		return handleRemoveChatInput(ctx, update, text)
	case dialog.InputAddKeyword:
		return handleAddKeywordInput(ctx, update, userID, text)
	case dialog.InputRemoveKeyword:
		return handleRemoveKeywordInput(ctx, update, text)
	case dialog.InputResolveOnly:
		return handleResolveInput(ctx, update, text)
	}
	return dispatcher.EndGroups
}

func handleAddChatInput(ctx *ext.Context, update *ext.Update, ref string) error {
	chat, err := deps.Registry.AddChat(ctx, ref)
	if err != nil {
		var key i18nk.Key
		switch {
		case errors.Is(err, registry.ErrChatAlreadyWatched):
			key = i18nk.MsgChatAlready
		default:
			log.FromContext(ctx).Errorf("failed to add chat %q: %s", ref, err)
			ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgOperationFailed, map[string]any{
				"Error": err.Error(),
			})), nil)
			return dispatcher.EndGroups
		}
		ctx.Reply(update, ext.ReplyTextString(i18n.T(key, map[string]any{"Chat": ref})), nil)
		return dispatcher.EndGroups
	}
	ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgChatAdded, map[string]any{
		"Chat": chat.Label,
	})), nil)
	return dispatcher.EndGroups
}

func handleRemoveChatInput(ctx *ext.Context, update *ext.Update, ref string) error {
	chat, err := deps.Registry.RemoveChat(ctx, ref)
	if err != nil {
		if errors.Is(err, registry.ErrChatNotWatched) {
			ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgChatNotFound, map[string]any{
				"Chat": ref,
			})), nil)
			return dispatcher.EndGroups
		}
		log.FromContext(ctx).Errorf("failed to remove chat %q: %s", ref, err)
		ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgOperationFailed, map[string]any{
			"Error": err.Error(),
		})), nil)
		return dispatcher.EndGroups
	}
	ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgChatRemoved, map[string]any{
		"Chat": chat.Label,
	})), nil)
	return dispatcher.EndGroups
}

// handleAddKeywordInput parks the term and asks the stemming question
// instead of inserting right away.
func handleAddKeywordInput(ctx *ext.Context, update *ext.Update, userID int64, term string) error {
	term = strings.ToLower(term)
	if term == "" {
		ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.PromptAddKeyword)), nil)
		return dispatcher.EndGroups
	}
	markup, err := msgelem.BuildStemChoiceMarkup(term)
	if err != nil {
		log.FromContext(ctx).Errorf("failed to build stem choice keyboard: %s", err)
		ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgOperationFailed, map[string]any{
			"Error": err.Error(),
		})), nil)
		return dispatcher.EndGroups
	}
	deps.Dialog.ArmStemChoice(userID, term)
	ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.PromptStemChoice, map[string]any{
		"Term": term,
	})), &ext.ReplyOpts{Markup: markup})
	return dispatcher.EndGroups
}

func handleRemoveKeywordInput(ctx *ext.Context, update *ext.Update, term string) error {
	removed, err := deps.Registry.RemoveKeyword(ctx, term)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrKeywordNotFound), errors.Is(err, registry.ErrEmptyTerm):
			ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgKeywordNotFound, map[string]any{
				"Term": term,
			})), nil)
		default:
			log.FromContext(ctx).Errorf("failed to remove keyword %q: %s", term, err)
			ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgOperationFailed, map[string]any{
				"Error": err.Error(),
			})), nil)
		}
		return dispatcher.EndGroups
	}
	ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgKeywordRemoved, map[string]any{
		"Terms": msgelem.JoinTerms(removed),
	})), nil)
	return dispatcher.EndGroups
}

func handleResolveInput(ctx *ext.Context, update *ext.Update, ref string) error {
	id, err := deps.Resolver.Resolve(ctx, ref)
	if err != nil {
		ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgResolveFailed, map[string]any{
			"Error": err.Error(),
		})), nil)
		return dispatcher.EndGroups
	}
	ctx.Reply(update, ext.ReplyTextString(i18n.T(i18nk.MsgResolved, map[string]any{
		"Ref": ref,
		"ID":  id,
	})), nil)
	return dispatcher.EndGroups
}

func keywordAddErrorText(term string, err error) string {
	if errors.Is(err, registry.ErrKeywordExists) {
		return i18n.T(i18nk.MsgKeywordAlready, map[string]any{"Term": term})
	}
	return i18n.T(i18nk.MsgOperationFailed, map[string]any{"Error": err.Error()})
}
