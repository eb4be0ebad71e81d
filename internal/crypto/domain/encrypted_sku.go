package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncryptedSKU is the text envelope persisted in place of a plaintext SKU.
//
// Serialized form: "v1:<algorithm>:<base64(nonce || ciphertext || tag)>". The
// envelope is self-contained, so a stored value can be decoded without any
// per-row metadata besides the process key.
type EncryptedSKU struct {
	Version   string
	Algorithm Algorithm
	Payload   []byte
}

// ParseEncryptedSKU parses the text envelope produced by EncryptedSKU.String.
//
// Any malformed input yields an error wrapping errors.ErrDataIntegrity; the
// offending value is never echoed back in the error message.
func ParseEncryptedSKU(content string) (EncryptedSKU, error) {
	parts := strings.Split(content, ":")
	if len(parts) != 3 {
		return EncryptedSKU{}, fmt.Errorf(
			"%w: expected 3 parts, got %d",
			ErrInvalidEnvelopeFormat,
			len(parts),
		)
	}

	if parts[0] != EnvelopeVersion {
		return EncryptedSKU{}, ErrUnsupportedEnvelopeVersion
	}

	alg := Algorithm(parts[1])
	if !alg.Supported() {
		return EncryptedSKU{}, ErrUnknownEnvelopeAlgorithm
	}

	payload, err := base64.StdEncoding.Strict().DecodeString(parts[2])
	if err != nil {
		return EncryptedSKU{}, ErrInvalidEnvelopeBase64
	}

	return EncryptedSKU{
		Version:   parts[0],
		Algorithm: alg,
		Payload:   payload,
	}, nil
}

// String serializes the envelope.
func (e EncryptedSKU) String() string {
	return fmt.Sprintf(
		"%s:%s:%s",
		e.Version,
		e.Algorithm,
		base64.StdEncoding.EncodeToString(e.Payload),
	)
}
