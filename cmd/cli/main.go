package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/travelguru/travelguru/internal/client/cli"
)

func main() {
	server := flag.String("a", "http://localhost:8001", "auth service base URL")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		fmt.Fprintln(os.Stderr, "usage: cli [-a server] <register|login|whoami|change-password>")
		os.Exit(2)
	}

	app := cli.NewApp(*server)
	if err := app.Run(context.Background(), command); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
