package msgelem

import (
	"fmt"
	"strings"

	"github.com/gotd/td/tg"
	"github.com/krelay/kwrelay-bot/common/cache"
	"github.com/krelay/kwrelay-bot/common/i18n"
	"github.com/krelay/kwrelay-bot/common/i18n/i18nk"
	"github.com/krelay/kwrelay-bot/pkg/keyword"
	"github.com/krelay/kwrelay-bot/pkg/tcbdata"
	"github.com/krelay/kwrelay-bot/storage"
	"github.com/rs/xid"
)

// BuildMenuMarkup lays out the management menu. Every button carries a
// static action tag, no cached payload.
func BuildMenuMarkup() *tg.ReplyInlineMarkup {
	row := func(pairs ...[2]string) tg.KeyboardButtonRow {
		r := tg.KeyboardButtonRow{}
		for _, p := range pairs {
			r.Buttons = append(r.Buttons, &tg.KeyboardButtonCallback{
				Text: p[0],
				Data: []byte(p[1]),
			})
		}
		return r
	}
	return &tg.ReplyInlineMarkup{
		Rows: []tg.KeyboardButtonRow{
			row(
				[2]string{i18n.T(i18nk.BtnAddChat), tcbdata.TypeAddChat},
				[2]string{i18n.T(i18nk.BtnRemoveChat), tcbdata.TypeRemoveChat},
				[2]string{i18n.T(i18nk.BtnListChats), tcbdata.TypeListChats},
			),
			row(
				[2]string{i18n.T(i18nk.BtnAddKeyword), tcbdata.TypeAddKeyword},
				[2]string{i18n.T(i18nk.BtnRemoveKeyword), tcbdata.TypeRemoveKeyword},
				[2]string{i18n.T(i18nk.BtnListKeywords), tcbdata.TypeListKeywords},
			),
			row(
				[2]string{i18n.T(i18nk.BtnChatID), tcbdata.TypeChatID},
				[2]string{i18n.T(i18nk.BtnResolve), tcbdata.TypeResolve},
			),
		},
	}
}

// BuildBackMarkup is a single back-to-menu button for list views.
func BuildBackMarkup() *tg.ReplyInlineMarkup {
	return &tg.ReplyInlineMarkup{
		Rows: []tg.KeyboardButtonRow{{
			Buttons: []tg.KeyboardButtonClass{
				&tg.KeyboardButtonCallback{
					Text: i18n.T(i18nk.BtnBackToMenu),
					Data: []byte(tcbdata.TypeMenu),
				},
			},
		}},
	}
}

// BuildCancelMarkup is a single cancel button for input prompts.
func BuildCancelMarkup() *tg.ReplyInlineMarkup {
	return &tg.ReplyInlineMarkup{
		Rows: []tg.KeyboardButtonRow{{
			Buttons: []tg.KeyboardButtonClass{
				&tg.KeyboardButtonCallback{
					Text: i18n.T(i18nk.BtnBackToMenu),
					Data: []byte(tcbdata.TypeCancel),
				},
			},
		}},
	}
}

// BuildStemChoiceMarkup caches a yes and a no payload for the term and
// returns the two-button keyboard referencing them.
func BuildStemChoiceMarkup(term string) (*tg.ReplyInlineMarkup, error) {
	buttons := make([]tg.KeyboardButtonClass, 0, 2)
	for _, choice := range []struct {
		label i18nk.Key
		apply bool
	}{
		{i18nk.BtnStemYes, true},
		{i18nk.BtnStemNo, false},
	} {
		dataid := xid.New().String()
		if err := cache.Set(dataid, tcbdata.StemChoice{Term: term, ApplyStemming: choice.apply}); err != nil {
			return nil, err
		}
		buttons = append(buttons, &tg.KeyboardButtonCallback{
			Text: i18n.T(choice.label),
			Data: fmt.Appendf(nil, "%s %s", tcbdata.TypeStem, dataid),
		})
	}
	return &tg.ReplyInlineMarkup{
		Rows: []tg.KeyboardButtonRow{{Buttons: buttons}},
	}, nil
}

func BuildChatListText(chats []storage.Chat) string {
	if len(chats) == 0 {
		return i18n.T(i18nk.MsgChatListEmpty)
	}
	var b strings.Builder
	b.WriteString(i18n.T(i18nk.MsgChatListHeader))
	for _, c := range chats {
		b.WriteString("\n- ")
		b.WriteString(fmt.Sprintf("%d", c.ID))
		if c.Label != "" && c.Label != fmt.Sprintf("%d", c.ID) {
			b.WriteString(" (" + c.Label + ")")
		}
	}
	return b.String()
}

func BuildKeywordListText(keywords []keyword.Keyword) string {
	if len(keywords) == 0 {
		return i18n.T(i18nk.MsgKeywordListEmpty)
	}
	var b strings.Builder
	b.WriteString(i18n.T(i18nk.MsgKeywordListHeader))
	for _, k := range keywords {
		b.WriteString("\n- " + k.Term)
		if k.Origin == keyword.OriginStemmed {
			b.WriteString(" (from " + k.SourceTerm + ")")
		}
	}
	return b.String()
}

// JoinTerms renders inserted or removed keywords for result messages.
func JoinTerms(keywords []keyword.Keyword) string {
	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		terms = append(terms, k.Term)
	}
	return strings.Join(terms, ", ")
}
