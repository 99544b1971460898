package main

import (
	"log"

	"github.com/mkbkakwk/mynav/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ mynav failed to start: %v", err)
	}
}
