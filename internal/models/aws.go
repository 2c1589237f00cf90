package models

import "io"

// ArchiveInput describes a finished source file copied to object storage.
type ArchiveInput struct {
	File       io.Reader
	Name       string
	MimeType   string
	Size       int64
	Key        string
	BucketName string
}
