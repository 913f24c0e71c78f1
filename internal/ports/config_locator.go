package ports

// ConfigLocator finds the mathfish.yaml that applies to a directory.
type ConfigLocator interface {
	FindConfig(startDir string) (string, error)
}
