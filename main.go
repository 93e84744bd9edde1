package main

import "homecall/cmd"

func main() {
	cmd.Execute()
}
