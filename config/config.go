// Package config loads the declarative backend settings from config.toml.
// Exactly one backend section is active, selected by node.type; the process
// environment only overrides operational knobs, never the backend choice.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type NodeConfig struct {
	Type string `toml:"type"`
}

type LndGrpcConfig struct {
	Host        string `toml:"host"`
	MacaroonHex string `toml:"macaroon_hex"`
	CertHex     string `toml:"cert_hex"`
}

type LndRestConfig struct {
	Host        string `toml:"host"`
	MacaroonHex string `toml:"macaroon_hex"`
	CertPath    string `toml:"cert_path"`
}

type ClnConfig struct {
	Host string `toml:"host"`
}

type ApiConfig struct {
	PasswordHash string `toml:"password_hash"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
}

type Settings struct {
	Node    NodeConfig     `toml:"node"`
	LndGrpc *LndGrpcConfig `toml:"lnd-grpc"`
	LndRest *LndRestConfig `toml:"lnd-rest"`
	Cln     *ClnConfig     `toml:"cln"`
	Api     ApiConfig      `toml:"api"`
}

func Load(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var settings Settings
	if err := toml.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if settings.Api.Host == "" {
		settings.Api.Host = "127.0.0.1"
	}
	if settings.Api.Port == 0 {
		settings.Api.Port = 8080
	}

	return &settings, nil
}
