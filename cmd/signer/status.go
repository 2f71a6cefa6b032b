package main

import (
	"github.com/urfave/cli/v2"

	"github.com/coinwarden/signerd/internal/interfaces/ws"
)

var status = cli.Command{
	Name:   "status",
	Usage:  "returns info about the status of the daemon wallet",
	Action: statusAction,
}

func statusAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.call(ws.GetStatus, nil)
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
