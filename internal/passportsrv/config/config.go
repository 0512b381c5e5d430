package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// PlaceholderContractAddress is the sentinel contract address. When the
// configured token contract equals this value, ledger operations short-circuit
// into mock-success responses without dispatching anything.
const PlaceholderContractAddress = "0x0000000000000000000000000000000000000000"

const DefaultConfigFile = "/etc/dppsrv/dppsrv.conf"

type LedgerParam struct {
	Endpoint        string `toml:"endpoint"`
	Platform        string `toml:"platform"`
	ContractAddress string `toml:"contract_address"`
}

type ConfigParam struct {
	ServerPort string      `toml:"server_port"`
	HandleCORS bool        `toml:"handle_cors"`
	APIKeys    []string    `toml:"api_keys"`
	SeedFile   string      `toml:"seed_file"`
	Ledger     LedgerParam `toml:"ledger"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

// LoadConfig loads the toml config file. An empty filename loads defaults,
// which run the ledger facade in mock mode against the placeholder contract.
func LoadConfig(filename string) error {
	if filename == "" {
		cfg = defaultConfig()
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "error reading config file")
	}
	var cp ConfigParam
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return errors.Wrap(err, "error parsing config file")
	}
	if cp.ServerPort == "" {
		cp.ServerPort = defaultConfig().ServerPort
	}
	if cp.Ledger.ContractAddress == "" {
		cp.Ledger.ContractAddress = PlaceholderContractAddress
	}
	cfg = &cp
	return nil
}

func defaultConfig() *ConfigParam {
	return &ConfigParam{
		ServerPort: "8196",
		HandleCORS: true,
		Ledger: LedgerParam{
			Platform:        "EBSI",
			ContractAddress: PlaceholderContractAddress,
		},
	}
}

func init() {
	err := LoadConfig("")
	if err != nil {
		panic(err)
	}
}
