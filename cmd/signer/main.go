package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "signer CLI"
	app.Usage = "Command line interface for the signerd daemon"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "rpcserver",
			Usage: "the address of the signerd bridge",
			Value: "127.0.0.1:18432",
		},
	}
	app.Commands = append(
		app.Commands,
		&status,
		&create,
		&importwallet,
		&unlock,
		&lock,
		&accounts,
		&switchaccount,
		&rename,
		&deleteaccount,
		&sign,
		&pending,
		&approve,
		&reject,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[signer] %v\n", err)
	os.Exit(1)
}
