package main

import (
	"github.com/c9s/wavegif/pkg/cmd"
)

func main() {
	cmd.Execute()
}
