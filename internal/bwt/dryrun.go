package bwt

import (
	"io"
	"os"
	"path/filepath"
)

// scratchCopy copies the entire store tree into a throwaway temp directory
// so a dry-run intent can run all nine steps for real without touching the
// caller's actual root. The returned cleanup always removes the copy,
// success or failure.
func (e *Engine) scratchCopy() (string, func(), error) {
	tmpRoot, err := os.MkdirTemp("", "brain-dryrun-*")
	if err != nil {
		return "", func() {}, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpRoot) }

	if err := copyTree(e.Root, tmpRoot); err != nil {
		cleanup()
		return "", func() {}, err
	}
	return tmpRoot, cleanup, nil
}

func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode())
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src) // #nosec G304 - copying a trusted store tree
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode) // #nosec G304 - destination under our own temp dir
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
