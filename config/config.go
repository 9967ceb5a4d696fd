package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Agent struct {
		Name                string `json:"name"`                  // nome do agente para dispatch explícito (telefonia)
		DispatchIntervalSec int    `json:"dispatch_interval_sec"` // frequência do worker de ligações
		DispatchBatchSize   int    `json:"dispatch_batch_size"`
	} `json:"agent"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Agent.Name == "" {
		c.Agent.Name = "stella-telephony-agent"
	}
	if c.Agent.DispatchIntervalSec <= 0 {
		c.Agent.DispatchIntervalSec = 5
	}
	if c.Agent.DispatchBatchSize <= 0 {
		c.Agent.DispatchBatchSize = 10
	}

	return c
}
