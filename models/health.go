package models

type HealthItemName string

const (
	BlobStoreHealthItemName HealthItemName = "blob_store"
	IdpHealthItemName       HealthItemName = "identity_provider"
	ScorerHealthItemName    HealthItemName = "scorer"
)

type HealthItemStatus struct {
	Name   HealthItemName
	Status bool
}

type HealthStatus struct {
	Statuses []HealthItemStatus
}

func (l HealthStatus) IsHealthy() bool {
	for _, status := range l.Statuses {
		if !status.Status {
			return false
		}
	}
	return true
}
