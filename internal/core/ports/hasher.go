package ports

// ContentHasher computes deterministic digests of resource content.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type ContentHasher interface {
	// Hash returns a lowercase hexadecimal digest of content.
	Hash(content []byte) string
}
