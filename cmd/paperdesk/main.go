package main

import (
	"os"

	"paperdesk/cmd/paperdesk/commands"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
