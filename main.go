package main

import "github.com/CraigKelly/normgibbs/cmd"

// TODO: CSV output option alongside JSON for the sample command

func main() {
	cmd.Execute()
}
