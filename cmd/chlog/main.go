package main

import (
	"os"

	"github.com/navsdk/chlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
