package common

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

func idNode() *snowflake.Node {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return node
}

// UUIDint64 generates a snowflake-based int64 identifier.
func UUIDint64() int64 {
	return idNode().Generate().Int64()
}

// Sha256HashWithSalt returns the hex sha256 of src+salt.
func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return hex.EncodeToString(h.Sum(nil))
}

// GetSecretSalt reads the password salt from the environment, with a
// development fallback.
func GetSecretSalt() string {
	if s := os.Getenv("WORKSHOP_SECRET"); s != "" {
		return s
	}
	return "workshop-dev-secret"
}
