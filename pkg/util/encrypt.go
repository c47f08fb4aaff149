package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

// Argon2idParams are the cost settings stored alongside every operator password hash.
type Argon2idParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var defaultArgon2idParams = Argon2idParams{
	Memory:      16 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

var ErrInvalidHash = errors.New("invalid argon2id hash")

// argon2idRecord is one PHC formatted hash: $argon2id$v=19$m=...,t=...,p=...$salt$key
type argon2idRecord struct {
	params Argon2idParams
	salt   []byte
	key    []byte
}

func (r argon2idRecord) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, r.params.Memory, r.params.Iterations, r.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(r.salt),
		base64.RawStdEncoding.EncodeToString(r.key))
}

func (r argon2idRecord) derive(password string) []byte {
	return argon2.IDKey([]byte(password), r.salt, r.params.Iterations, r.params.Memory, r.params.Parallelism, r.params.KeyLength)
}

// CreateArgon2Hash hashes an operator password with a fresh random salt.
func CreateArgon2Hash(password string) (string, error) {
	rec := argon2idRecord{
		params: defaultArgon2idParams,
		salt:   make([]byte, defaultArgon2idParams.SaltLength),
	}
	if _, err := rand.Read(rec.salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}
	rec.key = rec.derive(password)
	return rec.String(), nil
}

// ComparePasswordAndHash recomputes the key with the parameters stored in encodedHash.
func ComparePasswordAndHash(password, encodedHash string) (bool, error) {
	rec, err := parseArgon2idRecord(encodedHash)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(rec.key, rec.derive(password)) == 1, nil
}

func parseArgon2idRecord(encoded string) (argon2idRecord, error) {
	var rec argon2idRecord
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return rec, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil {
		return rec, errors.Wrap(ErrInvalidHash, err.Error())
	}
	if version != argon2.Version {
		return rec, errors.Wrapf(ErrInvalidHash, "unsupported argon2 version %d", version)
	}
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d",
		&rec.params.Memory, &rec.params.Iterations, &rec.params.Parallelism); err != nil {
		return rec, errors.Wrap(ErrInvalidHash, err.Error())
	}

	var err error
	if rec.salt, err = base64.RawStdEncoding.DecodeString(fields[4]); err != nil {
		return rec, errors.Wrap(ErrInvalidHash, "salt")
	}
	if rec.key, err = base64.RawStdEncoding.DecodeString(fields[5]); err != nil || len(rec.key) == 0 {
		return rec, errors.Wrap(ErrInvalidHash, "key")
	}
	rec.params.SaltLength = uint32(len(rec.salt))
	rec.params.KeyLength = uint32(len(rec.key))
	return rec, nil
}
