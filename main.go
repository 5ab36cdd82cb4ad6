package main

import (
	"os"

	"github.com/witnet/witnetd/app"
)

func main() {
	if err := app.StartApp(); err != nil {
		os.Exit(1)
	}
}
