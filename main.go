package main

import "summagraph/cmd"

func main() {
	cmd.Execute()
}
