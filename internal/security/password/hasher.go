package password

import (
	"github.com/alexedwards/argon2id"
)

// Hasher produces and checks argon2id PHC strings under one parameter set.
type Hasher struct {
	params Params
}

func NewHasher(p Params) *Hasher { return &Hasher{params: p} }

// Hash returns a PHC string like `$argon2id$v=19$m=65536,t=3,p=1$...`
func (h *Hasher) Hash(plain string) (string, error) {
	return argon2id.CreateHash(plain, h.params.argon())
}

// Verify checks plain against phc and reports whether the stored hash was
// made with weaker parameters than the current ones.
func (h *Hasher) Verify(plain, phc string) (ok, needsRehash bool, err error) {
	ok, err = argon2id.ComparePasswordAndHash(plain, phc)
	if err != nil || !ok {
		return ok, false, err
	}
	return ok, h.NeedsRehash(phc), nil
}

func (h *Hasher) NeedsRehash(phc string) bool {
	stored, _, _, err := argon2id.DecodeHash(phc)
	if err != nil {
		return true
	}
	p := h.params
	return stored.Memory < p.Memory ||
		stored.Iterations < p.Iterations ||
		stored.Parallelism < p.Parallelism ||
		stored.SaltLength < p.SaltLength ||
		stored.KeyLength < p.KeyLength
}
