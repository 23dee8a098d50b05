package main

import "argent_backend/internal/app"

func main() {
	app.Run()
}
