package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SaveInSubdDir writes data to dirName/fileName under the working directory,
// creating the directory when needed. Only the base of fileName is used.
func SaveInSubdDir(dirName, fileName string, data []byte) (string, error) {
	dir, err := EnsureSubdDir(dirName)
	if err != nil {
		return "", err
	}

	base := filepath.Base(fileName)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	p := filepath.Join(dir, base)
	if err := os.WriteFile(p, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	return p, nil
}
