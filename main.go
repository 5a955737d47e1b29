package main

import "github.com/agentic-research/initmaker/cmd"

func main() {
	cmd.Execute()
}
