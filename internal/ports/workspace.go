package ports

// WorkspaceInitializer scaffolds a mathfish workspace in root.
type WorkspaceInitializer interface {
	Init(root string, force bool) error
}
