package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time is used for the hold duration
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for grid
// dimensions, a time.Duration for the hold lifetime.
type Config struct {
    Env          string        // application environment (e.g. "dev", "prod")
    Port         string        // HTTP port to listen on
    Rows         int           // number of seat rows in the venue grid
    Cols         int           // number of seats per row
    HoldDuration time.Duration // how long a seat hold stays valid
    Allocator    string        // seat allocation strategy: "threepass" or "divide"
    JWTSecret    string        // secret used to verify bearer tokens
    IDSecret     string        // operator secret the hold-identifier salt is derived from
    DBUser       string        // audit database username
    DBPass       string        // audit database password (optional)
    DBHost       string        // audit database host address
    DBPort       string        // audit database port number
    DBName       string        // audit database name
    AMQPURL      string        // RabbitMQ connection URL (optional; empty uses the broker default)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The audit database
// variables are optional as a set: when BOXOFFICE_DB_HOST is unset the
// audit trail is disabled and the engine runs purely in memory.
func Load() Config {
    cfg := Config{
        Env:          must("BOXOFFICE_ENV"),                   // environment (dev/test/prod)
        Port:         must("BOXOFFICE_PORT"),                  // port to bind the HTTP server
        Rows:         mustInt("BOXOFFICE_ROWS"),               // venue rows
        Cols:         mustInt("BOXOFFICE_COLS"),               // seats per row
        HoldDuration: mustDur("BOXOFFICE_HOLD_DURATION"),      // e.g. "90s"
        Allocator:    envStr("BOXOFFICE_ALLOCATOR", "divide"), // strategy selection
        JWTSecret:    must("BOXOFFICE_JWT_SECRET"),            // secret used for verifying JWTs
        IDSecret:     must("BOXOFFICE_ID_SECRET"),             // hold-identifier salt secret
        DBUser:       os.Getenv("BOXOFFICE_DB_USER"),          // audit database user
        DBPass:       os.Getenv("BOXOFFICE_DB_PASS"),          // audit database password (empty allowed)
        DBHost:       os.Getenv("BOXOFFICE_DB_HOST"),          // audit database host
        DBPort:       os.Getenv("BOXOFFICE_DB_PORT"),          // audit database port
        DBName:       os.Getenv("BOXOFFICE_DB_NAME"),          // audit database name
        AMQPURL:      os.Getenv("BOXOFFICE_AMQP_URL"),         // message broker URL
    }
    if cfg.Rows < 1 || cfg.Cols < 1 {
        log.Fatalf("venue grid must be at least 1x1, got %dx%d", cfg.Rows, cfg.Cols)
    }
    if cfg.HoldDuration <= 0 {
        log.Fatalf("BOXOFFICE_HOLD_DURATION must be positive, got %s", cfg.HoldDuration)
    }
    switch cfg.Allocator {
    case "threepass", "divide":
    default:
        log.Fatalf("unknown BOXOFFICE_ALLOCATOR %q (want threepass or divide)", cfg.Allocator)
    }
    return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// mustDur is like must() but parses the value as a time.Duration
// (e.g. "90s", "2m").
func mustDur(key string) time.Duration {
    s := must(key)
    d, err := time.ParseDuration(s)
    if err != nil {
        log.Fatalf("invalid duration for %s: %q", key, s)
    }
    return d
}
