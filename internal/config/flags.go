package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags registers every configuration flag on fs and parses args.
//
// Flags:
//
//	-a                 server address in format [host]:[port]
//	-d                 database DSN
//	-db-driver         postgres | sqlite
//	-objects-driver    minio | memory
//	-s3-endpoint       object store endpoint host[:port]
//	-s3-bucket         object store bucket
//	-s3-region         object store region
//	-s3-access-key     object store access key id
//	-s3-secret-key     object store secret access key
//	-s3-ssl            use TLS for the object store
//	-c/-config         json file path with configs
//	-token-sign-key    token signing key
//	-token-issuer      token issuer name
//	-token-duration    token duration (e.g., "1h", "30m")
//	-request-timeout   request timeout (e.g., "30s", "1m")
//	-max-upload-size   upload limit in bytes
//	-retry-max-elapsed retry budget for transient store failures
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	cfg := new(StructuredConfig)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "db-driver", "", "Database driver (postgres, sqlite)")
	fs.StringVar(&cfg.Storage.Objects.Driver, "objects-driver", "", "Object store driver (minio, memory)")
	fs.StringVar(&cfg.Storage.Objects.Endpoint, "s3-endpoint", "", "Object store endpoint")
	fs.StringVar(&cfg.Storage.Objects.Bucket, "s3-bucket", "", "Object store bucket")
	fs.StringVar(&cfg.Storage.Objects.AccessKeyID, "s3-access-key", "", "Object store access key id")
	fs.StringVar(&cfg.Storage.Objects.SecretAccessKey, "s3-secret-key", "", "Object store secret access key")
	fs.StringVar(&cfg.Storage.Objects.Region, "s3-region", "", "Object store region")
	fs.BoolVar(&cfg.Storage.Objects.UseSSL, "s3-ssl", false, "Use TLS for the object store")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&cfg.Server.MaxUploadSize, "max-upload-size", 0, "Upload limit in bytes")
	fs.DurationVar(&cfg.Workers.RetryMaxElapsed, "retry-max-elapsed", time.Duration(0), "Retry budget for store failures")
	fs.DurationVar(&cfg.Workers.SweepInterval, "sweep-interval", time.Duration(0), "Pause between tombstone sweeps")
	fs.Uint64Var(&cfg.Workers.SweepBatch, "sweep-batch", 0, "Tombstones handled per sweep")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
