package api

import (
	"sync"

	"github.com/alex-pricope/contest-voting/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
}

type StorageConfig struct {
	// Driver selects the storage backend: "dynamo" (default) or "memory"
	// for running locally without AWS.
	Driver                string
	TableNameParticipants string
	TableNameVoteLedger   string
	TableNameSettings     string
	PhotoBucket           string
}

type ServerConfig struct {
	Port int
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			Driver:                getStringOrDefault("storage.Driver", "dynamo"),
			TableNameParticipants: viper.GetString("storage.TableNameParticipants"),
			TableNameVoteLedger:   viper.GetString("storage.TableNameVoteLedger"),
			TableNameSettings:     viper.GetString("storage.TableNameSettings"),
			PhotoBucket:           viper.GetString("storage.PhotoBucket"),
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault("server.port", 8080),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
