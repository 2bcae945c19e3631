package main

import (
	"github.com/andrescamacho/greeter-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
