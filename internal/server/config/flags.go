package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST bind address (e.g., ":8000")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   data directory
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-o string   comma separated CORS origins
//	-v          debug logging
//
// Flags owned by other components (-c, initadmin's -username...) are skipped
// by flagx.ParseKnown.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run REST server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	origins := fs.String("o", "", "CORS origins, comma separated")
	fs.BoolVar(&config.Debug, "v", config.Debug, "debug logging")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	if *origins != "" {
		config.CORSOrigins = parseOrigins(*origins)
	}
}
