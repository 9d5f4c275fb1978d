package main

import (
	"github.com/avollmer/partita/cmd"
)

func main() {
	cmd.Execute()
}
