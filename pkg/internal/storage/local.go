package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	root      string
	publicURL string
}

func NewLocalStore(root, publicURL string) *LocalStore {
	return &LocalStore{root: root, publicURL: strings.TrimSuffix(publicURL, "/")}
}

func (v *LocalStore) path(key string) string {
	return filepath.Join(v.root, filepath.FromSlash(key))
}

func (v *LocalStore) Put(_ context.Context, key, _ string, data io.Reader, _ int64) error {
	dst := v.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("unable to prepare directory: %v", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create file: %v", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, data); err != nil {
		return fmt.Errorf("unable to write file: %v", err)
	}
	return nil
}

func (v *LocalStore) Remove(_ context.Context, key string) error {
	if err := os.Remove(v.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (v *LocalStore) URL(key string) string {
	return v.publicURL + "/" + key
}
