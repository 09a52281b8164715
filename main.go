package main

import "github.com/tinkertanker/groupmaker/cmd"

func main() {
	cmd.Execute()
}
