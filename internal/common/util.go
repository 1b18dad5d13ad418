// Package common holds small helpers shared by client packages.
package common

// WipeByteArray overwrites b with zeros. Used for passwords once they have
// been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
