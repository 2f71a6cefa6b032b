package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/coinwarden/signerd/internal/interfaces/ws"
)

var create = cli.Command{
	Name:  "create",
	Usage: "create a new account encrypted under a password",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "password",
			Usage:    "the encryption password, at least 8 characters",
			Required: true,
		},
	},
	Action: createAction,
}

var importwallet = cli.Command{
	Name:  "import",
	Usage: "import an account from an existing WIF secret",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "the account address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "wif",
			Usage:    "the WIF-encoded secret key",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "the encryption password, at least 8 characters",
			Required: true,
		},
	},
	Action: importAction,
}

var unlock = cli.Command{
	Name:  "unlock",
	Usage: "unlock the current account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "password",
			Usage:    "the (un)locking password",
			Required: true,
		},
	},
	Action: unlockAction,
}

var lock = cli.Command{
	Name:   "lock",
	Usage:  "lock the daemon wallet",
	Action: lockAction,
}

func createAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.call(ws.CreateWallet, map[string]string{
		"password": ctx.String("password"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func importAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.call(ws.ImportWallet, map[string]string{
		"address":   ctx.String("address"),
		"wifSecret": ctx.String("wif"),
		"password":  ctx.String("password"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func unlockAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.call(ws.Unlock, map[string]string{
		"password": ctx.String("password"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func lockAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := client.call(ws.Lock, nil); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Wallet is locked")
	return nil
}
