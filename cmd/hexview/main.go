package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/hexview/internal/app"
)

func main() {
	if err := app.New(os.Args[1:]).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "hexview:", err)
		os.Exit(1)
	}
}
