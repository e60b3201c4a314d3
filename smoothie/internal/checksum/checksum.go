// Package checksum computes the 16-bit keyword fingerprints used to key
// command tables and public-data lookups. The fingerprint is a Fletcher-16
// over the keyword bytes with both sums reduced mod 255, so it is stable
// across builds and cheap enough to compute per received line.
package checksum

// Of returns the fingerprint of s.
func Of(s string) uint16 {
	var sum1, sum2 uint32
	for i := 0; i < len(s); i++ {
		sum1 = (sum1 + uint32(s[i])) % 255
		sum2 = (sum2 + sum1) % 255
	}
	return uint16(sum2<<8 | sum1)
}
