package main

import (
	"github.com/snipframe-cloud/snipframe/cmd"
	"github.com/snipframe-cloud/snipframe/pkg/env"
	"github.com/snipframe-cloud/snipframe/pkg/log"
)

func main() {
	if err := env.Process(); err != nil {
		log.Fatal("environment failure", "error", err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal("snipframe failure", "error", err)
	}
}
