package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v2"

	"github.com/coinwarden/signerd/internal/interfaces/ws"
)

// bridgeConn is one websocket session with the daemon. Most commands do a
// single round trip; signing keeps the connection open until the request is
// approved or rejected on another session.
type bridgeConn struct {
	conn *websocket.Conn
}

func getBridgeConn(ctx *cli.Context) (*bridgeConn, func(), error) {
	url := fmt.Sprintf("ws://%s/ws", ctx.String("rpcserver"))
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot reach the daemon at %s: %w", url, err)
	}
	cleanup := func() { conn.Close() }
	return &bridgeConn{conn: conn}, cleanup, nil
}

// call sends one command and waits for its response.
func (c *bridgeConn) call(method ws.Method, params interface{}) (interface{}, error) {
	req := ws.Request{ID: uuid.New().String(), Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		req.Params = raw
	}

	if err := c.conn.WriteJSON(req); err != nil {
		return nil, err
	}

	for {
		var resp ws.Response
		if err := c.conn.ReadJSON(&resp); err != nil {
			return nil, err
		}
		// Skip frames of earlier long-lived commands on this session.
		if resp.ID != req.ID {
			continue
		}
		if !resp.Success {
			return nil, errors.New(resp.Error)
		}
		return resp.Data, nil
	}
}

func printRespJSON(data interface{}) {
	out, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		fmt.Println(data)
		return
	}
	fmt.Println(string(out))
}
