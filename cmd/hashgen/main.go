package main

import (
	"fmt"
	"os"

	"team-hub.backend/pkg/crypto"
)

// Generates a bcrypt hash for a team password, for seeding teams directly
// in the database.
func main() {
	password := "TeamHub2026!"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	hash, err := generatePasswordHash(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

func generatePasswordHash(password string) (string, error) {
	return crypto.HashPassword(password)
}
