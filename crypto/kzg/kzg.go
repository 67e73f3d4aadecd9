package kzg

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"

	goethkzg "github.com/crate-crypto/go-eth-kzg"
	gokzg4844 "github.com/crate-crypto/go-kzg-4844"
	"github.com/rs/zerolog/log"
)

const (
	BlobCommitmentVersionKZG uint8 = 0x01
	PrecompileInputLength    int   = 192
)

// Backend selects which KZG library verifies point-evaluation proofs. The
// choice is made once, at activation-table construction, never per call.
type Backend uint8

const (
	// BackendGoKZG is crate-crypto/go-kzg-4844, the default. It supports
	// overriding the embedded trusted setup from a file.
	BackendGoKZG Backend = iota
	// BackendGoEthKZG is crate-crypto/go-eth-kzg.
	BackendGoEthKZG
)

func (b Backend) String() string {
	switch b {
	case BackendGoKZG:
		return "go-kzg-4844"
	case BackendGoEthKZG:
		return "go-eth-kzg"
	default:
		return fmt.Sprintf("kzg-backend(%d)", uint8(b))
	}
}

type VersionedHash [32]byte

var (
	errInvalidInputLength = errors.New("invalid input length")

	// The value that gets returned when the point evaluation precompile
	// succeeds: field elements per blob and the BLS modulus.
	precompileReturnValue [64]byte

	trustedSetupFile string

	gokzgCtx      *gokzg4844.Context
	initCryptoCtx sync.Once

	goethkzgCtx      *goethkzg.Context
	initGoEthKzgOnce sync.Once
)

func init() {
	new(big.Int).SetUint64(gokzg4844.ScalarsPerBlob).FillBytes(precompileReturnValue[:32])
	copy(precompileReturnValue[32:], gokzg4844.BlsModulus[:])
}

// SetTrustedSetupFilePath overrides the embedded trusted setup of the
// go-kzg-4844 backend. Must be called before the first verification.
func SetTrustedSetupFilePath(path string) {
	trustedSetupFile = path
}

// InitKZGCtx initializes the global go-kzg-4844 context. This is expensive;
// production services should pre-initialize instead of paying for it on the
// first verification.
func InitKZGCtx() {
	initCryptoCtx.Do(func() {
		if trustedSetupFile != "" {
			file, err := os.ReadFile(trustedSetupFile)
			if err != nil {
				panic(fmt.Sprintf("could not read file, err: %v", err))
			}

			setup := new(gokzg4844.JSONTrustedSetup)
			if err = json.Unmarshal(file, setup); err != nil {
				panic(fmt.Sprintf("could not unmarshal, err: %v", err))
			}

			gokzgCtx, err = gokzg4844.NewContext4096(setup)
			if err != nil {
				panic(fmt.Sprintf("could not create KZG context, err: %v", err))
			}
			log.Info().Str("path", trustedSetupFile).Msg("loaded KZG trusted setup from file")
		} else {
			var err error
			// Initialize context to match the configurations that the
			// specs are using.
			gokzgCtx, err = gokzg4844.NewContext4096Secure()
			if err != nil {
				panic(fmt.Sprintf("could not create context, err : %v", err))
			}
		}
	})
}

func goKzgCtx() *gokzg4844.Context {
	InitKZGCtx()
	return gokzgCtx
}

func goEthKzgCtx() *goethkzg.Context {
	initGoEthKzgOnce.Do(func() {
		var err error
		goethkzgCtx, err = goethkzg.NewContext4096Secure()
		if err != nil {
			panic(fmt.Sprintf("could not create context, err : %v", err))
		}
	})
	return goethkzgCtx
}

// KZGToVersionedHash implements kzg_to_versioned_hash from EIP-4844
func KZGToVersionedHash(kzg [48]byte) VersionedHash {
	h := sha256.Sum256(kzg[:])
	h[0] = BlobCommitmentVersionKZG

	return VersionedHash(h)
}

// VerifyKZGProof verifies that the polynomial behind commitment evaluates
// to y at z, using the selected backend.
func VerifyKZGProof(backend Backend, commitment [48]byte, z, y [32]byte, proof [48]byte) error {
	switch backend {
	case BackendGoEthKZG:
		return goEthKzgCtx().VerifyKZGProof(goethkzg.KZGCommitment(commitment), goethkzg.Scalar(z), goethkzg.Scalar(y), goethkzg.KZGProof(proof))
	default:
		return goKzgCtx().VerifyKZGProof(gokzg4844.KZGCommitment(commitment), gokzg4844.Scalar(z), gokzg4844.Scalar(y), gokzg4844.KZGProof(proof))
	}
}

// PointEvaluationPrecompile implements point_evaluation_precompile from
// EIP-4844:
//
//	versioned hash ‖ z ‖ y ‖ commitment ‖ proof
func PointEvaluationPrecompile(backend Backend, input []byte) ([]byte, error) {
	if len(input) != PrecompileInputLength {
		return nil, errInvalidInputLength
	}
	// versioned hash: first 32 bytes
	var versionedHash [32]byte
	copy(versionedHash[:], input[:32])

	var z, y [32]byte
	// Evaluation point: next 32 bytes
	copy(z[:], input[32:64])
	// Expected output: next 32 bytes
	copy(y[:], input[64:96])

	// input kzg point: next 48 bytes
	var commitment [48]byte
	copy(commitment[:], input[96:144])
	if KZGToVersionedHash(commitment) != VersionedHash(versionedHash) {
		return nil, errors.New("mismatched versioned hash")
	}

	// Quotient kzg: next 48 bytes
	var proof [48]byte
	copy(proof[:], input[144:PrecompileInputLength])

	if err := VerifyKZGProof(backend, commitment, z, y, proof); err != nil {
		return nil, fmt.Errorf("verify_kzg_proof error: %w", err)
	}

	result := precompileReturnValue // copy the value

	return result[:], nil
}
