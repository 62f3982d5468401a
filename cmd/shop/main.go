package main

import "shop/cmd/shop/commands"

func main() {
	commands.Execute()
}
