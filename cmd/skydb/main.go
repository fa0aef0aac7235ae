package main

import (
	"github.com/skynetlabs/go-skydb/cmd/skydb/cmd"
)

func main() {
	cmd.Execute()
}
