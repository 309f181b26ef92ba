package dto

import (
	"time"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/pure_utils"
)

type S3ObjectDto struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

type S3ObjectListingDto struct {
	Bucket    string        `json:"bucket"`
	Prefix    string        `json:"prefix"`
	Objects   []S3ObjectDto `json:"objects"`
	Truncated bool          `json:"truncated"`
}

func AdaptS3ObjectListingDto(listing models.S3ObjectListing) S3ObjectListingDto {
	return S3ObjectListingDto{
		Bucket: listing.Bucket,
		Prefix: listing.Prefix,
		Objects: pure_utils.Map(listing.Objects, func(object models.S3Object) S3ObjectDto {
			return S3ObjectDto{
				Key:          object.Key,
				Size:         object.Size,
				LastModified: object.LastModified,
			}
		}),
		Truncated: listing.Truncated,
	}
}

type DynamoTableDescriptionDto struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	ItemCount int64  `json:"itemCount"`
	SizeBytes int64  `json:"sizeBytes"`
}

func AdaptDynamoTableDescriptionDto(table models.DynamoTableDescription) DynamoTableDescriptionDto {
	return DynamoTableDescriptionDto{
		Name:      table.Name,
		Status:    table.Status,
		ItemCount: table.ItemCount,
		SizeBytes: table.SizeBytes,
	}
}

type DynamoScanResultDto struct {
	Table string           `json:"table"`
	Count int              `json:"count"`
	Items []map[string]any `json:"items"`
}

func AdaptDynamoScanResultDto(result models.DynamoScanResult) DynamoScanResultDto {
	return DynamoScanResultDto{
		Table: result.Table,
		Count: result.Count,
		Items: result.Items,
	}
}
