package main

import "github.com/tucanbot/flowgate/cmd"

func main() {
	cmd.Execute()
}
