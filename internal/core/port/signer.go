package port

type Signer interface {
	// Sign returns the signature segment for an unsigned path, or the insecure placeholder when signing is disabled.
	Sign(path string) string
	// Enabled reports whether Sign computes real signatures.
	Enabled() bool
}

type Verifier interface {
	// Verify checks a signature segment against the unsigned path it was computed over.
	Verify(path, signature string) error
}
