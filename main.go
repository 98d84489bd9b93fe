package main

import (
	"github.com/loglens/loglens/internal/cmd"
)

func main() {
	cmd.Execute()
}
