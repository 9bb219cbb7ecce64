package main

// @title Simple Notes Manager API
// @version 1.0
// @description Service to create, read, update and delete text notes.
// @BasePath /
func main() {
	Execute()
}
