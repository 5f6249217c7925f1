package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/dispatcher/handlers"
	"github.com/celestix/gotgproto/dispatcher/handlers/filters"
	"github.com/celestix/gotgproto/ext"
	"github.com/krelay/kwrelay-bot/common/i18n/i18nk"
	"github.com/krelay/kwrelay-bot/dialog"
	"github.com/krelay/kwrelay-bot/pkg/resolve"
	"github.com/krelay/kwrelay-bot/pkg/tcbdata"
	"github.com/krelay/kwrelay-bot/registry"
	"github.com/krelay/kwrelay-bot/relay"
)

// Deps wires the handlers to the rest of the application.
type Deps struct {
	Registry *registry.Registry
	Relay    *relay.Engine
	Dialog   *dialog.Manager
	Resolver resolve.Resolver
	Admins   []int64
}

var deps Deps

type DescCommandHandler struct {
	Cmd     string
	Desc    i18nk.Key
	handler func(ctx *ext.Context, u *ext.Update) error
}

var CommandHandlers = []DescCommandHandler{
	{"start", i18nk.CmdDescStart, handleStartCmd},
	{"help", i18nk.CmdDescHelp, handleStartCmd},
	{"cancel", i18nk.CmdDescCancel, handleCancelCmd},
	{"chatid", i18nk.CmdDescChatID, handleChatIDCmd},
}

func Register(disp dispatcher.Dispatcher, d Deps) {
	deps = d
	disp.AddHandler(handlers.NewMessage(filters.Message.ChatType(filters.ChatTypeChannel), handleWatchedMessage))
	disp.AddHandler(handlers.NewMessage(filters.Message.ChatType(filters.ChatTypeChat), handleWatchedMessage))
	disp.AddHandler(handlers.NewMessage(filters.Message.All, checkPermission))
	for _, info := range CommandHandlers {
		disp.AddHandler(handlers.NewCommand(info.Cmd, info.handler))
	}
	disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(tcbdata.TypeStem), handleStemCallback))
	disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(tcbdata.TypeMenu), handleMenuCallback))
	disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(tcbdata.TypeCancel), handleCancelCallback))
	for _, action := range []string{
		tcbdata.TypeAddChat,
		tcbdata.TypeRemoveChat,
		tcbdata.TypeListChats,
		tcbdata.TypeAddKeyword,
		tcbdata.TypeRemoveKeyword,
		tcbdata.TypeListKeywords,
		tcbdata.TypeChatID,
		tcbdata.TypeResolve,
	} {
		disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(action), handleActionCallback))
	}
	disp.AddHandler(handlers.NewMessage(filters.Message.Text, handleDialogInput))
}
