// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
)

type fakeStorage struct {
	existing map[string]bool
	put      []string
}

func (f *fakeStorage) StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if f.existing[object] {
		return minio.ObjectInfo{Key: object}, nil
	}
	return minio.ObjectInfo{}, errors.New("not found")
}

func (f *fakeStorage) FPutObject(ctx context.Context, bucket, object, path string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.put = append(f.put, object)
	return minio.UploadInfo{Key: object}, nil
}

func TestPutFileUploadsMissingObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yago-wd-facts.nt.gz")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	storage := &fakeStorage{existing: map[string]bool{}}
	if err := PutFile(context.Background(), storage, "yago4", "yago-wd-facts.nt.gz", path); err != nil {
		t.Fatalf("PutFile failed: %v", err)
	}
	if len(storage.put) != 1 || storage.put[0] != "yago-wd-facts.nt.gz" {
		t.Errorf("put = %v, want one upload of yago-wd-facts.nt.gz", storage.put)
	}
}

func TestPutFileSkipsExistingObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yago-wd-facts.nt.gz")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	storage := &fakeStorage{existing: map[string]bool{"yago-wd-facts.nt.gz": true}}
	if err := PutFile(context.Background(), storage, "yago4", "yago-wd-facts.nt.gz", path); err != nil {
		t.Fatalf("PutFile failed: %v", err)
	}
	if len(storage.put) != 0 {
		t.Errorf("put = %v, want no uploads for an already-present object", storage.put)
	}
}
