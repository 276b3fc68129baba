package ports

// HookInstaller installs the repository's git hooks.
//
//go:generate go run go.uber.org/mock/mockgen -source=hooks.go -destination=mocks/mock_hooks.go -package=mocks
type HookInstaller interface {
	// Install writes the hook scripts below baseDir and points git at them.
	Install(baseDir string) error
}
