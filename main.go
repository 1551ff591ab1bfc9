package main

import "github.com/Alex-H307/cafe-system/cmd"

func main() {
	cmd.Execute()
}
