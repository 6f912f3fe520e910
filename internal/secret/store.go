package secret

// SecretStore persists small secrets (the generator API key) outside
// the app's own state.
type SecretStore interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
}
