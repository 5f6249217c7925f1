// Package chatref normalizes user-supplied chat references (numeric IDs,
// @usernames, t.me links) into a canonical form without touching the network.
package chatref

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/duke-git/lancet/v2/validator"
)

type Kind int

const (
	KindID Kind = iota
	KindUsername
	KindInvite
)

// Ref is a normalized chat reference. Exactly one of ID, Username or
// Invite is meaningful, selected by Kind.
type Ref struct {
	Kind     Kind
	ID       int64
	Username string
	Invite   string
}

func (r Ref) String() string {
	switch r.Kind {
	case KindID:
		return strconv.FormatInt(r.ID, 10)
	case KindUsername:
		return "@" + r.Username
	case KindInvite:
		return "t.me/+" + r.Invite
	}
	return ""
}

var ErrInvalidFormat = errors.New("unrecognized chat reference format")

const minBareUsernameLen = 5

// Normalize applies the reference rules in order, first match wins:
// signed numeric string, @username, invite link, public link, bare
// username token of length >= 5. Anything else is ErrInvalidFormat.
func Normalize(raw string) (Ref, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Ref{}, ErrInvalidFormat
	}
	if validator.IsIntStr(s) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Ref{}, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
		}
		return Ref{Kind: KindID, ID: id}, nil
	}
	if name, ok := strings.CutPrefix(s, "@"); ok {
		if !isUsernameToken(name) {
			return Ref{}, ErrInvalidFormat
		}
		return Ref{Kind: KindUsername, Username: name}, nil
	}
	if strings.Contains(s, "://") {
		return normalizeLink(s)
	}
	if isUsernameToken(s) && len(s) >= minBareUsernameLen {
		return Ref{Kind: KindUsername, Username: s}, nil
	}
	return Ref{}, ErrInvalidFormat
}

func normalizeLink(s string) (Ref, error) {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return Ref{}, ErrInvalidFormat
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return Ref{}, ErrInvalidFormat
	}
	if token, ok := strings.CutPrefix(path, "+"); ok {
		if token == "" {
			return Ref{}, ErrInvalidFormat
		}
		return Ref{Kind: KindInvite, Invite: token}, nil
	}
	if token, ok := strings.CutPrefix(path, "joinchat/"); ok {
		if token == "" || strings.Contains(token, "/") {
			return Ref{}, ErrInvalidFormat
		}
		return Ref{Kind: KindInvite, Invite: token}, nil
	}
	segment, _, _ := strings.Cut(path, "/")
	if !isUsernameToken(segment) {
		return Ref{}, ErrInvalidFormat
	}
	return Ref{Kind: KindUsername, Username: segment}, nil
}

func isUsernameToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
