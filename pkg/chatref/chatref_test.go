package chatref_test

import (
	"errors"
	"testing"

	"github.com/krelay/kwrelay-bot/pkg/chatref"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    chatref.Ref
		wantErr bool
	}{
		{
			name:  "numeric id",
			input: "2229835658",
			want:  chatref.Ref{Kind: chatref.KindID, ID: 2229835658},
		},
		{
			name:  "negative id",
			input: "-1001234567890",
			want:  chatref.Ref{Kind: chatref.KindID, ID: -1001234567890},
		},
		{
			name:  "username with at",
			input: "@some_channel",
			want:  chatref.Ref{Kind: chatref.KindUsername, Username: "some_channel"},
		},
		{
			name:  "plus invite link",
			input: "https://t.me/+AbCdEf123",
			want:  chatref.Ref{Kind: chatref.KindInvite, Invite: "AbCdEf123"},
		},
		{
			name:  "joinchat invite link",
			input: "https://t.me/joinchat/AbCdEf123",
			want:  chatref.Ref{Kind: chatref.KindInvite, Invite: "AbCdEf123"},
		},
		{
			name:  "public link",
			input: "https://t.me/some_channel",
			want:  chatref.Ref{Kind: chatref.KindUsername, Username: "some_channel"},
		},
		{
			name:  "public link with trailing path",
			input: "https://t.me/some_channel/42",
			want:  chatref.Ref{Kind: chatref.KindUsername, Username: "some_channel"},
		},
		{
			name:  "bare username",
			input: "durov_chat",
			want:  chatref.Ref{Kind: chatref.KindUsername, Username: "durov_chat"},
		},
		{
			name:  "surrounding whitespace",
			input: "  @some_channel  ",
			want:  chatref.Ref{Kind: chatref.KindUsername, Username: "some_channel"},
		},
		{
			name:    "short bare token",
			input:   "abc",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "at with nothing after",
			input:   "@",
			wantErr: true,
		},
		{
			name:    "link without path",
			input:   "https://t.me",
			wantErr: true,
		},
		{
			name:    "bare plus in link",
			input:   "https://t.me/+",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not a chat!!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chatref.Normalize(tt.input)
			if tt.wantErr {
				if !errors.Is(err, chatref.ErrInvalidFormat) {
					t.Fatalf("Normalize(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNoNetworkForInvalid(t *testing.T) {
	// Rule six never reaches a resolver: invalid formats fail fast.
	if _, err := chatref.Normalize("??"); err == nil {
		t.Fatal("expected error for unresolvable input")
	}
}
