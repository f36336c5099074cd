package main

import (
	"github/chapool/go-disperse/cmd"
)

func main() {
	cmd.Execute()
}
