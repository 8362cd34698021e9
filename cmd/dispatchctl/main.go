package main

import "github.com/dshills/dispatchkit/internal/cli"

func main() {
	cli.Execute()
}
