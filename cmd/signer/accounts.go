package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/coinwarden/signerd/internal/interfaces/ws"
)

var accounts = cli.Command{
	Name:   "accounts",
	Usage:  "list all accounts of the wallet",
	Action: accountsAction,
}

var switchaccount = cli.Command{
	Name:  "switch",
	Usage: "change the current account",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "index",
			Usage:    "the list position of the target account",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "password",
			Usage: "unlock the target account right away; omit to leave the wallet locked",
		},
	},
	Action: switchAction,
}

var rename = cli.Command{
	Name:  "rename",
	Usage: "rename an account",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "index",
			Usage:    "the list position of the account",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the new display name",
			Required: true,
		},
	},
	Action: renameAction,
}

var deleteaccount = cli.Command{
	Name:  "delete",
	Usage: "delete an account; the last account cannot be deleted",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "index",
			Usage:    "the list position of the account",
			Required: true,
		},
	},
	Action: deleteAction,
}

func accountsAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.call(ws.GetAccounts, nil)
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func switchAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.call(ws.SwitchAccount, map[string]interface{}{
		"index":    ctx.Int("index"),
		"password": ctx.String("password"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func renameAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := client.call(ws.RenameAccount, map[string]interface{}{
		"index":   ctx.Int("index"),
		"newName": ctx.String("name"),
	}); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Account renamed")
	return nil
}

func deleteAction(ctx *cli.Context) error {
	client, cleanup, err := getBridgeConn(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := client.call(ws.DeleteAccount, map[string]interface{}{
		"index": ctx.Int("index"),
	}); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Account deleted, wallet is locked")
	return nil
}
