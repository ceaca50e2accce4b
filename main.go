package main

import "github.com/sitemint/sitemint-backend/cmd"

func main() {
	cmd.Init()
}
