package main

import (
	"github.com/awnumar/memguard"

	"github.com/ojsef39/opsops/cmd"
)

func main() {
	memguard.CatchInterrupt()
	cmd.Execute()
}
