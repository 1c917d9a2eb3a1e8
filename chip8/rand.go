package chip8

import "math/rand"

// defaultRand backs randSource with the package-global math/rand
// source, matching the teacher's use of rand.Intn for CXKK.
type defaultRand struct{}

func (defaultRand) Intn(n int) int {
	return rand.Intn(n)
}
