package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=account_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultListenAddr = ":8080"
const defaultChannelID = "LedgerApp"
const defaultChannelKey = "LedgerChannelKey001"
const defaultMovementStream = "ledger.movements"

type Config struct {
	StorageDriver  string
	DatabaseDSN    string
	MigrationsDir  string
	ListenAddr     string
	ChannelID      string
	ChannelKeyHash string
	RedisAddr      string
	MovementStream string
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKeyHash := strings.TrimSpace(os.Getenv("CHANNEL_KEY_HASH"))
	if channelKeyHash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(defaultChannelKey), bcrypt.DefaultCost)
		if err != nil {
			return Config{}, fmt.Errorf("hash default channel key: %w", err)
		}
		channelKeyHash = string(hashed)
	}

	stream := strings.TrimSpace(os.Getenv("MOVEMENT_STREAM"))
	if stream == "" {
		stream = defaultMovementStream
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER")))
	if driver == "" {
		driver = "postgres"
	}

	return Config{
		StorageDriver:  driver,
		DatabaseDSN:    normalizeConnectionString(conn),
		MigrationsDir:  filepath.Join("src", "migrations"),
		ListenAddr:     listenAddr,
		ChannelID:      channelID,
		ChannelKeyHash: channelKeyHash,
		RedisAddr:      strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		MovementStream: stream,
	}, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
