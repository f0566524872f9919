package main

import (
	_ "embed"

	"github.com/haierkeys/note-graph-service/cmd"
)

//go:embed config/config.yaml
var c string

// @title Note Graph Service API
// @version 0.1.0
// @description Personal note graph: users, notes with a single parent, graph projection.
// @BasePath /
// @securityDefinitions.apikey UserAuthToken
// @in header
// @name Authorization
// @description Bearer access token
func main() {
	cmd.Execute(c)
}
