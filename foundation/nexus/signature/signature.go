// Package signature provides the digest and identity helpers for the
// ledger. The chain is a single-authority simulation, so hashes provide
// tamper evidence only; no consensus security is implied.
package signature

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Hash returns a unique string for the value. The digest is computed over
// the canonical JSON serialization of the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// GenerateIdentity derives a fresh opaque ledger address by generating an
// ECDSA key and taking the address of its public key. The private key is
// discarded; transactions in this simulation are not signed.
func GenerateIdentity() (string, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return "", err
	}

	return crypto.PubkeyToAddress(privateKey.PublicKey).String(), nil
}
