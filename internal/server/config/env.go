package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// lookupFunc has the shape of os.LookupEnv.
type lookupFunc func(key string) (string, bool)

var osLookup lookupFunc = os.LookupEnv

// loadDotEnv copies KEY=VALUE pairs from .env files into the process
// environment. Variables that are already set win; a missing file is fine.
func loadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// mapLookup adapts a map (e.g. from godotenv.Read) to lookupFunc.
func mapLookup(env map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// parseEnv overlays Config with environment variables.
//
// Recognized variables:
//
//	DATA_DIR                     data directory
//	SECRET_KEY                   JWT HMAC secret
//	ACCESS_TOKEN_EXPIRE_MINUTES  access token validity, minutes
//	HOST, PORT                   REST bind address parts
//	GRPC_ADDR                    gRPC bind address
//	CORS_ORIGINS                 JSON list or comma separated origins
//	DEBUG                        boolean
//
// Invalid values panic, like the other config sources.
func parseEnv(config *Config, lookup lookupFunc) {
	if v, ok := lookup("DATA_DIR"); ok && v != "" {
		config.DataDir = v
	}
	if v, ok := lookup("SECRET_KEY"); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := lookup("ACCESS_TOKEN_EXPIRE_MINUTES"); ok && v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES: %w", err))
		}
		config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
	}

	host, hostOK := lookup("HOST")
	port, portOK := lookup("PORT")
	if hostOK || portOK {
		curHost, curPort, err := net.SplitHostPort(config.EndpointAddrHTTP)
		if err != nil {
			curHost, curPort = "", "8000"
		}
		if hostOK {
			curHost = host
		}
		if portOK && port != "" {
			curPort = port
		}
		config.EndpointAddrHTTP = net.JoinHostPort(curHost, curPort)
	}

	if v, ok := lookup("GRPC_ADDR"); ok && v != "" {
		config.EndpointAddrGRPC = v
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		config.CORSOrigins = parseOrigins(v)
	}
	if v, ok := lookup("DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("DEBUG: %w", err))
		}
		config.Debug = debug
	}
}

func parseOrigins(v string) []string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "[") {
		var list []string
		if err := json.Unmarshal([]byte(v), &list); err != nil {
			panic(fmt.Errorf("CORS_ORIGINS: %w", err))
		}
		return list
	}

	var list []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			list = append(list, o)
		}
	}
	return list
}
