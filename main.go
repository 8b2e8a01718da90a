package main

import "github.com/killallgit/dialogue-qc/cmd"

// @title           Dialogue QC API
// @version         1.0.0
// @description     Corruption detection for synthesized dialogue audio
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/dialogue-qc
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
