package main

import "github.com/10jackyhu24/Audio2Score/cmd"

func main() {
	cmd.Execute()
}
