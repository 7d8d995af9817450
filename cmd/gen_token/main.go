package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generates an operator session token for local API testing:
//
//	go run ./cmd/gen_token -email admin@ealaani.sa -role admin
func main() {
	email := flag.String("email", "admin@example.com", "operator email claim")
	role := flag.String("role", "admin", "operator role claim")
	flag.Parse()

	secret := os.Getenv("APP_SIGNING_SECRET")
	if secret == "" {
		secret = "test-secret"
	}

	claims := jwt.MapClaims{
		"email": *email,
		"role":  *role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(8 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	fmt.Println(signedToken)
}
