package config

import (
	"fmt"
	"os"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// ListenAddrKey is the address the bridge HTTP server binds to
	ListenAddrKey = "LISTEN_ADDR"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the network to use. One of "mainnet", "testnet3" or "regtest"
	NetworkKey = "NETWORK"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("signerd", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("SIGNERD")
	vip.AutomaticEnv()

	vip.SetDefault(ListenAddrKey, "127.0.0.1:18432")
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NetworkKey, chaincfg.MainNetParams.Name)
	vip.SetDefault(DatadirKey, defaultDatadir)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetNetwork ...
func GetNetwork() *chaincfg.Params {
	switch vip.GetString(NetworkKey) {
	case chaincfg.TestNet3Params.Name:
		return &chaincfg.TestNet3Params
	case chaincfg.RegressionNetParams.Name:
		return &chaincfg.RegressionNetParams
	default:
		return &chaincfg.MainNetParams
	}
}

//GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	net := GetString(NetworkKey)
	for _, known := range []string{
		chaincfg.MainNetParams.Name,
		chaincfg.TestNet3Params.Name,
		chaincfg.RegressionNetParams.Name,
	} {
		if net == known {
			return nil
		}
	}
	return fmt.Errorf("network must be one of mainnet, testnet3 or regtest")
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDatadir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
