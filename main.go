package main

import (
	"os"

	"clouddrive/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
