package port

// FileStore defines read access to the downloads directory tree.
type FileStore interface {
	// RootDir returns the downloads root directory
	RootDir() string

	// AppDir returns the install directory for an app id
	AppDir(appID string) string

	// ListAppFiles returns the relative paths of all files under an app's
	// directory, recursively, sorted. A missing directory surfaces as an
	// os.IsNotExist error.
	ListAppFiles(appID string) ([]string, error)

	// ResolveFile maps an app id and a relative path to an absolute path
	// inside the downloads tree, rejecting traversal outside of it.
	ResolveFile(appID, relPath string) (string, error)
}
