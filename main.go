package main

import "github.com/M4ss1ck/whatsapp-simulator/internal/cmd"

func main() {
	cmd.Execute()
}
