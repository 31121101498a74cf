// Command boxoffice-token mints a bearer token for a customer email so
// operators can hand out credentials (or exercise a local server) without
// running a separate identity service.
//
//	boxoffice-token -email alice@example.com -ttl 60
package main

import (
    "flag"
    "fmt"
    "log"
    "os"

    "github.com/joho/godotenv"

    "github.com/seatcraft/boxoffice/internal/auth"
)

func main() {
    _ = godotenv.Load()

    email := flag.String("email", "", "customer email to embed as the token subject")
    ttl := flag.Int("ttl", 60, "token lifetime in minutes")
    flag.Parse()

    if *email == "" {
        flag.Usage()
        os.Exit(2)
    }
    secret := os.Getenv("BOXOFFICE_JWT_SECRET")
    if secret == "" {
        log.Fatal("missing required env var: BOXOFFICE_JWT_SECRET")
    }

    tok, err := auth.NewAccessToken(secret, *email, *ttl)
    if err != nil {
        log.Fatalf("mint token: %v", err)
    }
    fmt.Println(tok.Token)
}
