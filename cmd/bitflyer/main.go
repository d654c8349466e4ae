package main

import (
	"github.com/c9s/bitflyer/pkg/cmd"
)

func main() {
	cmd.Execute()
}
