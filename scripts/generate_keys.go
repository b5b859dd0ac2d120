//go:build ignore

// Prints a starter .env with fresh JWT secrets and an admin password.
// Run with: go run scripts/generate_keys.go [admin-email]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

func randomString(n int, enc *base64.Encoding) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		fmt.Fprintf(os.Stderr, "read random bytes: %v\n", err)
		os.Exit(1)
	}
	return enc.EncodeToString(b)
}

func main() {
	adminEmail := "admin@localhost"
	if len(os.Args) > 1 {
		adminEmail = strings.ToLower(strings.TrimSpace(os.Args[1]))
	}

	fmt.Println("# Authentication")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", randomString(32, base64.StdEncoding))
	fmt.Printf("JWT_REFRESH_SECRET_KEY=%s\n", randomString(32, base64.StdEncoding))
	fmt.Println()
	fmt.Println("# First admin account, created at startup if missing")
	fmt.Printf("ADMIN_EMAIL=%s\n", adminEmail)
	fmt.Printf("ADMIN_PASSWORD=%s\n", randomString(18, base64.RawURLEncoding))
	fmt.Println()
	fmt.Println("# Storage")
	fmt.Println("MONGODB_ENABLED=true")
	fmt.Println("MONGODB_URI=mongodb://localhost:27017")
	fmt.Println("MONGODB_DATABASE=coating_service")
	fmt.Println()
	fmt.Println("# Optional: publish this catalog at startup when it changes")
	fmt.Println("# CATALOG_FILE=./catalog.yaml")
}
