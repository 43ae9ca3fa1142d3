package main

import (
	"os"

	"github.com/schmitthub/linebar/internal/linebar"
)

func main() {
	os.Exit(linebar.Main())
}
