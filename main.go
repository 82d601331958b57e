package main

import "github.com/finleyford/chipvm/cmd"

func main() {
	cmd.Execute()
}
