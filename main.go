package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/authenticator/internal/app"
)

// @title           Authenticator API
// @version         1.0
// @description     Authenticator parses otpauth TOTP URIs, computes one-time codes and streams them as they rotate.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @server          http://localhost:8081
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
