package main

import (
	"os"

	"github.com/mikanfactory/sagasu/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
