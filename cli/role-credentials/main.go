package main

import (
	"os"

	"github.com/uber/role-credentials/cli"
)

func main() {
	os.Exit(cli.Main(os.Stdout, os.Stderr, os.Args[1:]))
}
