package main

import "chainwork_backend/internal/app"

func main() {
	app.Run()
}
