// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorax

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ForkConfig config for a fork.
//
// ExpiryAligned is the block number from which node expiry is evaluated
// against the new block's own height instead of the previous one. The rule
// differs by exactly one block across the boundary, so it must stay a
// config value rather than a constant.
type ForkConfig struct {
	ExpiryAligned uint32 `yaml:"expiryAligned"`
}

func (fc ForkConfig) String() string {
	var strs []string
	push := func(name string, blockNum uint32) {
		if blockNum != math.MaxUint32 {
			strs = append(strs, fmt.Sprintf("%v: #%v", name, blockNum))
		}
	}

	push("EXPAL", fc.ExpiryAligned)

	if len(strs) == 0 {
		return "no fork"
	}
	return strings.Join(strs, ", ")
}

// NoFork a special config without any forks.
var NoFork = ForkConfig{
	ExpiryAligned: math.MaxUint32,
}

// for well-known networks
var forkConfigs = map[Bytes32]ForkConfig{
	// mainnet
	MustParseBytes32("0x60d12a29b478852ad0b2bfc1b041bbc1a276ea73ec3e22b1de35a02e1f481c01"): {
		ExpiryAligned: 321_467,
	},
	// testnet
	MustParseBytes32("0x09b182e7a49633db771d9f45c1a2e4fcf13b682d565f9b3daa233e1cb085213a"): {
		ExpiryAligned: 44_500,
	},
}

// GetForkConfig get fork config for given genesis ID.
// Unknown genesis IDs resolve to NoFork.
func GetForkConfig(genesisID Bytes32) ForkConfig {
	if fc, ok := forkConfigs[genesisID]; ok {
		return fc
	}
	return NoFork
}

// LoadForkConfig load a custom-network fork config from a yaml file.
func LoadForkConfig(path string) (ForkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ForkConfig{}, err
	}
	fc := NoFork
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return ForkConfig{}, err
	}
	return fc, nil
}
