package main

import (
	"github.com/opsdevcode/knode/cmd"
)

func main() {
	cmd.Execute()
}
