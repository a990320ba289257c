package main

import (
	"github.com/e2ekit/browserdog/internal/cmd"
)

func main() {
	cmd.Execute()
}
