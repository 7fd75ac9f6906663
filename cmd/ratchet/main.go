package main

import "github.com/philjestin/ratchet/cmd"

func main() {
	cmd.Execute()
}
