package ports

// TreeFSPort performs the filesystem operations behind the merge
// engine. Implementations create missing parent directories on copies
// and treat deleting an absent tree as a no-op.
type TreeFSPort interface {
	Exists(path string) (bool, error)
	EnsureDir(path string) error
	DeleteTree(path string) error
	// CopyTree copies the tree rooted at src into dest. With overwrite
	// false the destination must not exist yet. With overwrite true,
	// same-named destination files are replaced and unrelated
	// destination files are left alone.
	CopyTree(src string, dest string, overwrite bool) error
	CopyFile(src string, dest string) error
	ReadFile(path string) ([]byte, error)
	// ScanFiles returns the sorted slash-relative paths of every file
	// under root whose name ends in ext. A missing root yields an empty
	// result, not an error.
	ScanFiles(root string, ext string) ([]string, error)
}
