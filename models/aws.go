package models

import "time"

type S3Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type S3ObjectListing struct {
	Bucket  string
	Prefix  string
	Objects []S3Object
	// True when the listing was cut off at the page size.
	Truncated bool
}

type DynamoTableDescription struct {
	Name      string
	Status    string
	ItemCount int64
	SizeBytes int64
}

type DynamoScanResult struct {
	Table string
	Count int
	Items []map[string]any
}
