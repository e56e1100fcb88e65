package main

import (
	"github.com/c9s/chartview/pkg/cmd"
)

func main() {
	cmd.Execute()
}
