package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/peterkuimelis/hanabi/internal/game"
)

// Client watches a hosted game and renders it as text.
type Client struct {
	conn    net.Conn
	out     io.Writer
	Verbose bool // print the table after every turn, not only at the end
}

// Watch connects to a server, asks for a game and renders it to w until the
// game ends.
func Watch(ctx context.Context, addr, preset string, seed int64, verbose bool, w io.Writer) (*game.GameResult, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(ClientMessage{Type: MsgJoin, Preset: preset, Seed: seed}); err != nil {
		return nil, fmt.Errorf("send join: %w", err)
	}

	c := &Client{conn: conn, out: w, Verbose: verbose}
	return c.Follow(ctx)
}

// Follow reads server messages until game_over.
func (c *Client) Follow(ctx context.Context) (*game.GameResult, error) {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	dec := json.NewDecoder(c.conn)
	var last *StateView
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil, errors.New("server closed the connection before the game ended")
			}
			return nil, fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgState:
			last = msg.State
			if c.Verbose {
				c.renderState(last)
			}

		case MsgError:
			return nil, fmt.Errorf("server: %s", msg.Error)

		case MsgGameOver:
			c.renderState(last)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			if msg.Result != nil {
				fmt.Fprintf(c.out, "%s, score %d after %d turns\n", msg.Result.OutcomeName, msg.Result.Score, msg.Result.Turns)
			}
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return msg.Result, nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	who := "--"
	if ev.Player >= 0 {
		who = fmt.Sprintf("P%d", ev.Player)
	}
	fmt.Fprintf(c.out, "T%-3d %s | %s\n", ev.Turn, who, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	fmt.Fprintln(c.out, RenderState(sv))
}

// RenderState draws the table: stacks and resources on top, one row per hand.
func RenderState(sv *StateView) string {
	var stacks []string
	for _, s := range game.Suits {
		stacks = append(stacks, fmt.Sprintf("%s:%d", s, sv.Stacks[s.String()]))
	}

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Turn %d | tokens %d | strikes %d | score %d | deck %d",
		sv.Turn, sv.ClueTokens, sv.Strikes, sv.Score, sv.DeckCount))
	t.AppendHeader(table.Row{"Player", "Hand (oldest first)", "Chop"})
	for _, h := range sv.Hands {
		name := fmt.Sprintf("P%d", h.Player)
		if h.Player == sv.Active {
			name += " *"
		}
		var cards []string
		for _, s := range h.Cards {
			if m := s.Marks(); m != "" {
				cards = append(cards, fmt.Sprintf("%s[%s]", s.Card, m))
			} else {
				cards = append(cards, s.Card)
			}
		}
		chop := "-"
		if h.Chop >= 0 {
			chop = fmt.Sprint(h.Chop)
		}
		t.AppendRow(table.Row{name, strings.Join(cards, " "), chop})
	}
	t.AppendFooter(table.Row{"Stacks", strings.Join(stacks, " "), ""})
	t.SetStyle(table.StyleLight)
	return t.Render()
}
