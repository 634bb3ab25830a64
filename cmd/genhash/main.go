package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Prints the bcrypt hash of the first argument (password or POS PIN).
func main() {
	secret := "j5pharmacy2026"
	if len(os.Args) > 1 {
		secret = os.Args[1]
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
