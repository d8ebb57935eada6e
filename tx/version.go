// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "fmt"

// Version transaction format version. Gates which fields exist on the wire.
type Version byte

const (
	// V1 classic per-input signature groups, global unlock time.
	V1 Version = 1
	// V2 embedded ring signature instead of classic signatures.
	V2 Version = 2
	// V3 per-output unlock times and the legacy deregister flag.
	V3 Version = 3
	// V4 explicit type tag replacing the legacy flag.
	V4 Version = 4

	// MinVersion lowest decodable version. Version 0 never existed on chain.
	MinVersion = V1
	// MaxVersion highest known version.
	MaxVersion = V4
)

// Valid reports whether the version is known.
func (v Version) Valid() bool {
	return v >= MinVersion && v <= MaxVersion
}

func (v Version) String() string {
	return fmt.Sprintf("v%d", byte(v))
}

// Type transaction type, selectable from V3 on.
type Type byte

const (
	// TypeStandard ordinary value transfer (also carries registration payloads).
	TypeStandard Type = iota
	// TypeDeregister carries a deregistration payload voted by a quorum.
	TypeDeregister
	// TypeKeyImageUnlock requests early unlock of a staked key image.
	TypeKeyImageUnlock

	// TypeCount number of known types; any wire tag at or above this fails
	// decode. Forward-compatibility boundary, never silently ignored.
	TypeCount
)

func (t Type) String() string {
	switch t {
	case TypeStandard:
		return "standard"
	case TypeDeregister:
		return "deregister"
	case TypeKeyImageUnlock:
		return "keyimage-unlock"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}
