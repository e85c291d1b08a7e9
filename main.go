package main

import "github.com/Dharmikkumbhani/khichdi-backend/cmd"

func main() {
	cmd.Run()
}
