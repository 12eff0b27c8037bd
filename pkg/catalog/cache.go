package catalog

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/gabigabogabu/stl-bench/pkg/logging"
)

// cacheKey addresses one cached download by the hash of its source
// URL. Cache misses and write failures are soft: the caller just
// re-downloads.
type cacheKey struct {
	dir string
	key string
}

func makeCacheKey(dir string, args ...any) *cacheKey {
	h := sha256.New()

	enc := gob.NewEncoder(h)
	for _, arg := range args {
		if err := enc.Encode(arg); err != nil {
			panic("catalog: error encoding cache key: " + err.Error())
		}
	}

	return &cacheKey{dir: dir, key: hex.EncodeToString(h.Sum(nil))}
}

func (ck *cacheKey) path() string {
	return filepath.Join(ck.dir, ck.key)
}

// Load decodes the cached value into out, reporting whether a valid
// entry existed.
func (ck *cacheKey) Load(out any) bool {
	f, err := os.Open(ck.path())
	if err != nil {
		return false
	}
	defer f.Close()
	dec := gob.NewDecoder(f)
	if dec.Decode(out) != nil {
		return false
	}
	return true
}

// Save writes val to the cache. Failures are logged and swallowed.
func (ck *cacheKey) Save(val any) {
	if err := os.MkdirAll(ck.dir, 0o777); err != nil {
		logging.Warn("catalog: creating cache dir %s: %s", ck.dir, err)
		return
	}
	f, err := os.Create(ck.path())
	if err != nil {
		logging.Warn("catalog: saving to cache: %s", err)
		return
	}
	defer f.Close()
	enc := gob.NewEncoder(f)
	if err := enc.Encode(val); err != nil {
		logging.Warn("catalog: encoding cache value: %s", err)
	}
}
