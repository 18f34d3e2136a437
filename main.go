package main

import (
	"os"

	"github.com/remarklens/remarklens/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
