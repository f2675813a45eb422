package discord

import (
	"encoding/json"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"global name wins", User{Username: "omar123", GlobalName: "Omar"}, "Omar"},
		{"username fallback", User{Username: "omar123"}, "omar123"},
		{"empty", User{}, ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.DisplayName(); got != tc.want {
				t.Fatalf("DisplayName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestJumpURL(t *testing.T) {
	m := Message{ID: "m1", ChannelID: "c1", GuildID: "g1"}
	if got := m.JumpURL(); got != "https://discord.com/channels/g1/c1/m1" {
		t.Fatalf("JumpURL = %q", got)
	}
	dm := Message{ID: "m1", ChannelID: "c1"}
	if got := dm.JumpURL(); got != "https://discord.com/channels/@me/c1/m1" {
		t.Fatalf("DM JumpURL = %q", got)
	}
}

func TestHasManageGuild(t *testing.T) {
	tests := []struct {
		name  string
		perms string
		want  bool
	}{
		{"manage guild bit", "32", true},
		{"manage guild among others", "2147483680", true},
		{"no bit", "16", false},
		{"empty", "", false},
		{"garbage", "not-a-number", false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := HasManageGuild(tc.perms); got != tc.want {
				t.Fatalf("HasManageGuild(%q) = %v, want %v", tc.perms, got, tc.want)
			}
		})
	}
}

func TestCaller(t *testing.T) {
	member := Interaction{Member: &Member{User: User{ID: "u1"}}}
	if member.Caller().ID != "u1" {
		t.Fatalf("member caller = %+v", member.Caller())
	}
	dm := Interaction{User: &User{ID: "u2"}}
	if dm.Caller().ID != "u2" {
		t.Fatalf("dm caller = %+v", dm.Caller())
	}
	empty := Interaction{}
	if empty.Caller().ID != "" {
		t.Fatalf("empty caller = %+v", empty.Caller())
	}
}

// options arrive from the gateway as decoded JSON, so numbers are float64
func TestInteractionOptions(t *testing.T) {
	raw := `{"name":"incitement","options":[{"name":"action","value":"review"},{"name":"n","value":10}]}`
	var d InteractionData
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	i := Interaction{Data: d}

	if got := i.StringOption("action"); got != "review" {
		t.Fatalf("StringOption = %q", got)
	}
	if got := i.IntOption("n", 5); got != 10 {
		t.Fatalf("IntOption = %d", got)
	}
	if got := i.IntOption("missing", 5); got != 5 {
		t.Fatalf("IntOption default = %d", got)
	}
	if got := i.StringOption("missing"); got != "" {
		t.Fatalf("StringOption missing = %q", got)
	}
}
