// Package tcbdata holds the callback-data type tags and payloads carried
// by inline buttons. Payloads too big for callback data live in the cache
// keyed by an id appended after the tag.
package tcbdata

const (
	TypeMenu          = "menu"
	TypeAddChat       = "addchat"
	TypeRemoveChat    = "rmchat"
	TypeListChats     = "lschats"
	TypeAddKeyword    = "addkw"
	TypeRemoveKeyword = "rmkw"
	TypeListKeywords  = "lskws"
	TypeChatID        = "chatid"
	TypeResolve       = "resolve"
	TypeStem          = "stem"
	TypeCancel        = "cancel"
)

// StemChoice is the payload behind the yes/no stemming buttons.
type StemChoice struct {
	Term          string
	ApplyStemming bool
}
