package main

import "change-detector/cmd"

func main() {
	cmd.Execute()
}
