// @title           CollegeSkills API
// @version         1.0
// @description     Freelance marketplace for college students: gigs, project requests, escrow payments and chat.
// @contact.name    CollegeSkills
// @contact.email   support@collegeskills.app
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import (
	"collegeskills_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine, production injects real env vars.
	_ = godotenv.Load()

	app.Run()
}
