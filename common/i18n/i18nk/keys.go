// Package i18nk enumerates the message keys used across the bot.
package i18nk

type Key string

const (
	CmdDescStart  Key = "CmdDescStart"
	CmdDescHelp   Key = "CmdDescHelp"
	CmdDescCancel Key = "CmdDescCancel"
	CmdDescChatID Key = "CmdDescChatID"

	MsgDenied Key = "MsgDenied"
	MsgMenu   Key = "MsgMenu"

	BtnAddChat       Key = "BtnAddChat"
	BtnRemoveChat    Key = "BtnRemoveChat"
	BtnListChats     Key = "BtnListChats"
	BtnAddKeyword    Key = "BtnAddKeyword"
	BtnRemoveKeyword Key = "BtnRemoveKeyword"
	BtnListKeywords  Key = "BtnListKeywords"
	BtnChatID        Key = "BtnChatID"
	BtnResolve       Key = "BtnResolve"
	BtnBackToMenu    Key = "BtnBackToMenu"
	BtnStemYes       Key = "BtnStemYes"
	BtnStemNo        Key = "BtnStemNo"

	PromptAddChat       Key = "PromptAddChat"
	PromptRemoveChat    Key = "PromptRemoveChat"
	PromptAddKeyword    Key = "PromptAddKeyword"
	PromptRemoveKeyword Key = "PromptRemoveKeyword"
	PromptResolve       Key = "PromptResolve"
	PromptStemChoice    Key = "PromptStemChoice"

	MsgChatAdded      Key = "MsgChatAdded"
	MsgChatAlready    Key = "MsgChatAlready"
	MsgChatRemoved    Key = "MsgChatRemoved"
	MsgChatNotFound   Key = "MsgChatNotFound"
	MsgChatListHeader Key = "MsgChatListHeader"
	MsgChatListEmpty  Key = "MsgChatListEmpty"

	MsgKeywordAdded      Key = "MsgKeywordAdded"
	MsgKeywordAlready    Key = "MsgKeywordAlready"
	MsgKeywordRemoved    Key = "MsgKeywordRemoved"
	MsgKeywordNotFound   Key = "MsgKeywordNotFound"
	MsgKeywordListHeader Key = "MsgKeywordListHeader"
	MsgKeywordListEmpty  Key = "MsgKeywordListEmpty"

	MsgResolved        Key = "MsgResolved"
	MsgResolveFailed   Key = "MsgResolveFailed"
	MsgCurrentChatID   Key = "MsgCurrentChatID"
	MsgCancelled       Key = "MsgCancelled"
	MsgOperationFailed Key = "MsgOperationFailed"
	MsgDataExpired     Key = "MsgDataExpired"
)
