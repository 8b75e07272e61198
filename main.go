package main

import "github.com/circuitworks/gocable/cmd"

func main() {
	cmd.Execute()
}
