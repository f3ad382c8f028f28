package main

import (
	"github.com/dnbln/upsilon/cmd/upsilon-vcs/cmd"
)

func main() {
	cmd.Execute()
}
