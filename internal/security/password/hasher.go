package password

import (
	"sync"

	"github.com/alexedwards/argon2id"
)

var (
	policyMu sync.RWMutex
	policy   = DefaultParams()
)

// SetParams replaces the argon2id cost parameters. Call once at startup.
func SetParams(p Params) {
	policyMu.Lock()
	policy = p
	policyMu.Unlock()
}

func currentParams() Params {
	policyMu.RLock()
	defer policyMu.RUnlock()
	return policy
}

// Hash returns a PHC string like `$argon2id$v=19$m=131072,t=3,p=1$...`
func Hash(plain string) (string, error) {
	cur := currentParams()
	p := argon2id.Params{
		Memory:      cur.Memory,
		Iterations:  cur.Iterations,
		Parallelism: cur.Parallelism,
		SaltLength:  cur.SaltLength,
		KeyLength:   cur.KeyLength,
	}
	return argon2id.CreateHash(plain, &p)
}

// Verify checks password vs PHC hash and also indicates if a rehash is recommended.
func Verify(plain, phc string) (ok bool, needsRehash bool, err error) {
	ok, err = argon2id.ComparePasswordAndHash(plain, phc)
	if err != nil || !ok {
		return ok, false, err
	}
	return ok, NeedsRehash(phc), nil
}

func NeedsRehash(phc string) bool {
	stored, _, _, err := argon2id.DecodeHash(phc)
	if err != nil {
		// Can't parse: treat as needs rehash.
		return true
	}
	cur := currentParams()
	return stored.Memory < cur.Memory ||
		stored.Iterations < cur.Iterations ||
		stored.Parallelism < cur.Parallelism ||
		stored.SaltLength < cur.SaltLength ||
		stored.KeyLength < cur.KeyLength
}
