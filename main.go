package main

import (
	"github.com/helengibson/graphTPP-sub002/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
