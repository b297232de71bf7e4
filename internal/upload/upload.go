// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

// Package upload optionally ships a finished build's output files to
// S3-compatible object storage.
package upload

import (
	"context"
	"mime"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage is the subset of minio.Client this package uses. Defining
// our own narrow interface keeps tests from having to fake the whole
// (rather big) S3 client surface.
type Storage interface {
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// NewClient builds a minio client from endpoint/key/secret, the way
// the builder's S3 uploads are configured everywhere else in this
// codebase.
func NewClient(endpoint, accessKey, secretKey string) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, err
	}
	client.SetAppInfo("Yago4Builder", "0.1")
	return client, nil
}

// PutFile uploads the local file at path to bucket/objectName, unless
// an object of that exact name already exists there - a build directory
// is immutable once written, so a prior upload never needs to be redone.
func PutFile(ctx context.Context, storage Storage, bucket, objectName, path string) error {
	if _, err := storage.StatObject(ctx, bucket, objectName, minio.StatObjectOptions{}); err == nil {
		return nil
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := storage.FPutObject(ctx, bucket, objectName, path, minio.PutObjectOptions{ContentType: contentType})
	return err
}
