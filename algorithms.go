// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

import (
	"github.com/canonical/go-tpm2"
)

// DigestSize returns the size in bytes of a digest produced by the specified
// algorithm. It returns zero for any algorithm other than SHA-1, SHA-256,
// SHA-384 and SHA-512.
func DigestSize(alg tpm2.HashAlgorithmId) int {
	switch alg {
	case tpm2.HashAlgorithmSHA1, tpm2.HashAlgorithmSHA256, tpm2.HashAlgorithmSHA384, tpm2.HashAlgorithmSHA512:
		return alg.Size()
	default:
		return 0
	}
}

// AlgorithmName returns the TPM2 constant name for the specified algorithm.
func AlgorithmName(alg tpm2.HashAlgorithmId) string {
	switch alg {
	case tpm2.HashAlgorithmSHA1:
		return "TPM2_ALG_SHA1"
	case tpm2.HashAlgorithmSHA256:
		return "TPM2_ALG_SHA256"
	case tpm2.HashAlgorithmSHA384:
		return "TPM2_ALG_SHA384"
	case tpm2.HashAlgorithmSHA512:
		return "TPM2_ALG_SHA512"
	default:
		return "UNKNOWN_ALGORITHM"
	}
}
