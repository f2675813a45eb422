// Package discord provides the chat platform adapter: a REST client for
// moderation actions and a gateway listener for message and interaction events
package discord

import (
	"fmt"
	"strconv"
	"time"
)

// User is the minimal author shape the pipeline needs
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name,omitempty"`
	Bot        bool   `json:"bot,omitempty"`
}

// DisplayName prefers the global display name over the login name
func (u User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// Message is an incoming or fetched channel message
type Message struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	GuildID   string    `json:"guild_id,omitempty"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// JumpURL builds the canonical jump reference for a message
func (m Message) JumpURL() string {
	g := m.GuildID
	if g == "" {
		g = "@me"
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", g, m.ChannelID, m.ID)
}

// EmbedField is one name/value row of an embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed is a rich channel message payload
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// InteractionOption is one slash command argument
type InteractionOption struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// InteractionData carries the invoked command and its arguments
type InteractionData struct {
	Name    string              `json:"name"`
	Options []InteractionOption `json:"options,omitempty"`
}

// Member wraps a user with its guild-scoped permission set
type Member struct {
	User        User   `json:"user"`
	Permissions string `json:"permissions,omitempty"`
}

// Interaction is an incoming slash command invocation
type Interaction struct {
	ID        string          `json:"id"`
	Token     string          `json:"token"`
	GuildID   string          `json:"guild_id,omitempty"`
	ChannelID string          `json:"channel_id,omitempty"`
	Member    *Member         `json:"member,omitempty"`
	User      *User           `json:"user,omitempty"`
	Data      InteractionData `json:"data"`
}

// Caller returns the invoking user regardless of guild/DM context
func (i Interaction) Caller() User {
	if i.Member != nil {
		return i.Member.User
	}
	if i.User != nil {
		return *i.User
	}
	return User{}
}

// StringOption returns the named string option value, "" when absent
func (i Interaction) StringOption(name string) string {
	for _, o := range i.Data.Options {
		if o.Name == name {
			if s, ok := o.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

// IntOption returns the named integer option value with a default
func (i Interaction) IntOption(name string, def int) int {
	for _, o := range i.Data.Options {
		if o.Name == name {
			switch v := o.Value.(type) {
			case float64:
				return int(v)
			case string:
				if n, err := strconv.Atoi(v); err == nil {
					return n
				}
			}
		}
	}
	return def
}

// permManageGuild is the MANAGE_GUILD permission bit
const permManageGuild = 1 << 5

// HasManageGuild parses a permission bitset string and checks MANAGE_GUILD
func HasManageGuild(permissions string) bool {
	if permissions == "" {
		return false
	}
	bits, err := strconv.ParseUint(permissions, 10, 64)
	if err != nil {
		return false
	}
	return bits&permManageGuild != 0
}

// CommandOption describes one option of a registered slash command
type CommandOption struct {
	Type        int    `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// Command describes a slash command to register
type Command struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Options     []CommandOption `json:"options,omitempty"`
}

// Command option types used here
const (
	OptionString  = 3
	OptionInteger = 4
)
