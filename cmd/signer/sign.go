package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/coinwarden/signerd/internal/interfaces/ws"
)

var sign = cli.Command{
	Name: "sign",
	Usage: "submit a transaction for signing and wait for the approval " +
		"decision",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "tx",
			Usage:    "the hex-encoded unsigned transaction",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "details",
			Usage: "a human readable note shown on the approval surface",
		},
		&cli.StringFlag{
			Name:  "request-id",
			Usage: "the request identifier; generated when omitted",
		},
	},
	Action: signAction,
}

var pending = cli.Command{
	Name:   "pending",
	Usage:  "list signing requests awaiting a decision",
	Action: pendingAction,
}

var approve = cli.Command{
	Name:  "approve",
	Usage: "approve a pending signing request",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "request-id",
			Usage:    "the identifier of the pending request",
			Required: true,
		},
	},
	Action: approveAction,
}

var reject = cli.Command{
	Name:  "reject",
	Usage: "reject a pending signing request",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "request-id",
			Usage:    "the identifier of the pending request",
			Required: true,
		},
	},
	Action: rejectAction,
}

func signAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	requestID := ctx.String("request-id")
	if requestID == "" {
		requestID = uuid.New().String()
	}

	fmt.Printf("signing request %s submitted, waiting for approval...\n", requestID)

	// Blocks until the request is approved or rejected on another session.
	reply, err := client.call(ws.SignTransaction, map[string]string{
		"requestId":  requestID,
		"unsignedTx": ctx.String("tx"),
		"details":    ctx.String("details"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func pendingAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.call(ws.GetPendingRequests, nil)
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func approveAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := client.call(ws.ApproveSigning, map[string]string{
		"requestId": ctx.String("request-id"),
	}); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Request approved")
	return nil
}

func rejectAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := client.call(ws.RejectSigning, map[string]string{
		"requestId": ctx.String("request-id"),
	}); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Request rejected")
	return nil
}
