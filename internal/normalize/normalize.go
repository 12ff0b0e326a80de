// Package normalize reduces brand and account names to canonical comparison keys.
package normalize

// Key reduces s to its canonical matching form: every character outside the
// ASCII alphanumeric set is dropped and the remainder is lowercased. The same
// reduction must be applied to stored account fields and to incoming brand
// strings so keys compare byte-for-byte.
func Key(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		}
	}
	return string(out)
}
