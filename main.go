package main

import "holotable/cmd"

func main() {
	cmd.Execute()
}
