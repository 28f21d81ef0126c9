package main

import "github.com/km-arc/go-inject/cmd"

func main() {
	cmd.Execute()
}
