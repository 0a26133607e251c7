package main

import (
	"github.com/keyfold/keyfold/cmd"
)

func main() {
	cmd.Execute()
}
