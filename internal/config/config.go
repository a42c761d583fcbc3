package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers, secrets and paths, ints for
// durations and costs.
type Config struct {
    Env           string // application environment (e.g. "dev", "prod")
    Port          string // HTTP port to listen on
    DBUser        string // database username
    DBPass        string // database password (optional)
    DBHost        string // database host address
    DBPort        string // database port number
    DBName        string // database name
    JWTSecret     string // secret used to sign JWTs
    TokenTTLHours int    // access token time‑to‑live in hours
    BcryptCost    int    // bcrypt cost for password hashing
    ImageDir      string // directory where uploaded car images are stored
    ImageBaseURL  string // public URL prefix under which images are served
    LogDir        string // directory for daily application log files
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Paths and the token
// lifetime fall back to sensible defaults so a bare .env still boots.
func Load() Config {
    return Config{
        Env:           must("APP_ENV"),                     // environment (dev/test/prod)
        Port:          must("APP_PORT"),                    // port to bind the HTTP server
        DBUser:        must("DB_USER"),                     // database user
        DBPass:        os.Getenv("DB_PASS"),                // database password (empty allowed)
        DBHost:        must("DB_HOST"),                     // database host
        DBPort:        must("DB_PORT"),                     // database port
        DBName:        must("DB_NAME"),                     // database name
        JWTSecret:     must("JWT_SECRET"),                  // secret used for signing JWTs
        TokenTTLHours: intOr("TOKEN_TTL_HOURS", 8),         // fixed token lifetime, 8h in the reference deployment
        BcryptCost:    mustInt("BCRYPT_COST"),              // bcrypt cost factor
        ImageDir:      strOr("IMAGE_DIR", "public/images"), // uploaded image files land here
        ImageBaseURL:  strOr("IMAGE_BASE_URL", "/images"),  // URL prefix recorded in car_images.url
        LogDir:        strOr("LOG_DIR", "logs"),            // daily file logs land here
    }
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

// strOr returns the value of an optional variable or the given default.
func strOr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// intOr returns the integer value of an optional variable or the default.
func intOr(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil || n <= 0 {
        return def
    }
    return n
}
