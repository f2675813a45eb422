package discord

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"warden/internal/platform/logger"

	"github.com/gorilla/websocket"
)

// gateway opcodes used here
const (
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatACK   = 11
)

// gateway intents: guilds, guild messages, message content
const intents = (1 << 0) | (1 << 9) | (1 << 15)

const reconnectDelay = 5 * time.Second

// Handlers receives dispatched gateway events. Nil fields are skipped
type Handlers struct {
	// Ready fires once per connection with the application id
	Ready func(appID string)
	// MessageCreate fires per incoming channel message
	MessageCreate func(ctx context.Context, m Message)
	// InteractionCreate fires per slash command invocation
	InteractionCreate func(ctx context.Context, i Interaction)
}

// Gateway maintains the websocket session: identify, heartbeat, dispatch.
// It reconnects with a fixed delay until ctx is done
type Gateway struct {
	rest     *Client
	token    string
	handlers Handlers
	log      logger.Logger

	mu  sync.Mutex
	seq int64

	// wmu serializes frame writes; gorilla supports at most one concurrent writer
	wmu sync.Mutex
}

// NewGateway builds a Gateway over the given REST client
func NewGateway(rest *Client, token string, h Handlers) *Gateway {
	return &Gateway{
		rest:     rest,
		token:    token,
		handlers: h,
		log:      *logger.Named("gateway"),
	}
}

type payload struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d,omitempty"`
	S  int64           `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

// Run connects and processes events until ctx is cancelled
func (g *Gateway) Run(ctx context.Context) error {
	for {
		if err := g.session(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			g.log.Warn().Err(err).Dur("retry_in", reconnectDelay).Msg("gateway session ended")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

// session runs one connect-identify-listen cycle
func (g *Gateway) session(ctx context.Context) error {
	wsURL, err := g.rest.GatewayURL(ctx)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL+"?v=10&encoding=json", nil)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	// hello carries the heartbeat interval
	var hello payload
	if err := conn.ReadJSON(&hello); err != nil {
		return err
	}
	var helloData struct {
		HeartbeatInterval int `json:"heartbeat_interval"`
	}
	if hello.Op != opHello || json.Unmarshal(hello.D, &helloData) != nil || helloData.HeartbeatInterval <= 0 {
		g.log.Warn().Int("op", hello.Op).Msg("unexpected first gateway frame")
		helloData.HeartbeatInterval = 41250
	}

	if err := g.identify(conn); err != nil {
		return err
	}

	hbCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go g.heartbeatLoop(hbCtx, conn, time.Duration(helloData.HeartbeatInterval)*time.Millisecond)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		var p payload
		if err := conn.ReadJSON(&p); err != nil {
			return err
		}
		if p.S != 0 {
			g.mu.Lock()
			g.seq = p.S
			g.mu.Unlock()
		}
		switch p.Op {
		case opDispatch:
			g.dispatch(ctx, p)
		case opHeartbeat:
			g.sendHeartbeat(conn)
		case opReconnect, opInvalidSession:
			g.log.Info().Int("op", p.Op).Msg("gateway requested reconnect")
			return nil
		case opHeartbeatACK:
			// fine
		}
	}
}

// writeJSON is the single choke point for outbound frames: the read loop and
// the heartbeat goroutine both send, and the conn allows one writer at a time
func (g *Gateway) writeJSON(conn *websocket.Conn, v any) error {
	g.wmu.Lock()
	defer g.wmu.Unlock()
	return conn.WriteJSON(v)
}

func (g *Gateway) identify(conn *websocket.Conn) error {
	return g.writeJSON(conn, map[string]any{
		"op": opIdentify,
		"d": map[string]any{
			"token":   g.token,
			"intents": intents,
			"properties": map[string]string{
				"os":      "linux",
				"browser": "warden",
				"device":  "warden",
			},
		},
	})
}

func (g *Gateway) heartbeatLoop(ctx context.Context, conn *websocket.Conn, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			g.sendHeartbeat(conn)
		}
	}
}

func (g *Gateway) sendHeartbeat(conn *websocket.Conn) {
	g.mu.Lock()
	seq := g.seq
	g.mu.Unlock()
	if err := g.writeJSON(conn, map[string]any{"op": opHeartbeat, "d": seq}); err != nil {
		g.log.Warn().Err(err).Msg("heartbeat write failed")
	}
}

func (g *Gateway) dispatch(ctx context.Context, p payload) {
	switch p.T {
	case "READY":
		var d struct {
			Application struct {
				ID string `json:"id"`
			} `json:"application"`
		}
		if err := json.Unmarshal(p.D, &d); err != nil {
			g.log.Warn().Err(err).Msg("bad READY payload")
			return
		}
		g.log.Info().Str("app_id", d.Application.ID).Msg("gateway ready")
		if g.handlers.Ready != nil {
			g.handlers.Ready(d.Application.ID)
		}
	case "MESSAGE_CREATE":
		if g.handlers.MessageCreate == nil {
			return
		}
		var m Message
		if err := json.Unmarshal(p.D, &m); err != nil {
			g.log.Warn().Err(err).Msg("bad MESSAGE_CREATE payload")
			return
		}
		// one task per message mirrors the upstream client event loop
		go g.handlers.MessageCreate(ctx, m)
	case "INTERACTION_CREATE":
		if g.handlers.InteractionCreate == nil {
			return
		}
		var i Interaction
		if err := json.Unmarshal(p.D, &i); err != nil {
			g.log.Warn().Err(err).Msg("bad INTERACTION_CREATE payload")
			return
		}
		go g.handlers.InteractionCreate(ctx, i)
	}
}
