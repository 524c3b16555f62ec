package main

import "github.com/josephlewis42/procsh/cmd"

func main() {
	cmd.Execute()
}
