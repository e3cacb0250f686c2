// Package ckbaddr encodes CKB lock scripts as CKB2021 full addresses and
// derives the PW-Lock address bound to an Ethereum key, so weights held
// behind a MetaMask identity can be checked against the same chain records
// as natively registered addresses.
package ckbaddr

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

type Network int

const (
	Mainnet Network = iota
	Testnet
)

func (n Network) hrp() string {
	if n == Testnet {
		return "ckt"
	}
	return "ckb"
}

// Script hash type tags per the CKB address spec.
const (
	HashTypeData  byte = 0x00
	HashTypeType  byte = 0x01
	HashTypeData1 byte = 0x02
)

// full address format type tag
const fullFormatType byte = 0x00

// PW-Lock deployment on CKB, hash type "type".
const pwLockCodeHashHex = "bf43c3602455798c1a61a596e0d95278864c552fafe231c063b3fabf97a8febc"

var pwLockCodeHash = mustHash(pwLockCodeHashHex)

func mustHash(h string) (out [32]byte) {
	b, err := hex.DecodeString(h)
	if err != nil || len(b) != 32 {
		panic("ckbaddr: bad code hash constant: " + h)
	}
	copy(out[:], b)
	return out
}

type Script struct {
	CodeHash [32]byte
	HashType byte
	Args     []byte
}

// Address encodes the script as a CKB2021 full address:
// bech32m(hrp, 0x00 || code_hash || hash_type || args).
func (s Script) Address(net Network) (string, error) {
	payload := make([]byte, 0, 34+len(s.Args))
	payload = append(payload, fullFormatType)
	payload = append(payload, s.CodeHash[:]...)
	payload = append(payload, s.HashType)
	payload = append(payload, s.Args...)

	words, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(net.hrp(), words)
}

// FromEthKey derives the PW-Lock CKB address for an Ethereum public key or
// address, hex with or without a 0x prefix. Empty input is an explicit
// no-op and yields an empty address. Pure function, no I/O.
func FromEthKey(ethKeyHex string, net Network) (string, error) {
	if ethKeyHex == "" {
		return "", nil
	}

	h := strings.TrimPrefix(ethKeyHex, "0x")
	args, err := hex.DecodeString(strings.ToLower(h))
	if err != nil {
		return "", fmt.Errorf("invalid eth key hex %q: %w", ethKeyHex, err)
	}

	script := Script{
		CodeHash: pwLockCodeHash,
		HashType: HashTypeType,
		Args:     args,
	}
	return script.Address(net)
}

// Bridge satisfies the platform client's address-bridge interface for a
// fixed network.
type Bridge struct {
	Net Network
}

func (b Bridge) Derive(pubKeyHex string) (string, error) {
	return FromEthKey(pubKeyHex, b.Net)
}
