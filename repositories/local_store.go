package repositories

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/hydroscope/hydroscope-backend/models"
)

// LocalStore is the canonical in-process store for prediction records and
// manual sensor readings. Every prediction is written here unconditionally,
// whatever happens to the blob uploads, so history and the analytics
// fallback never depend on remote storage. Contents live for the lifetime
// of the process.
type LocalStore struct {
	mu          sync.RWMutex
	predictions map[string]models.PredictionRecord
	// prediction ids in insertion order, oldest first
	order    []string
	readings []models.SensorReading
}

func NewLocalStore() *LocalStore {
	return &LocalStore{
		predictions: make(map[string]models.PredictionRecord),
	}
}

func (store *LocalStore) AddPrediction(record models.PredictionRecord) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.predictions[record.Id]; !ok {
		store.order = append(store.order, record.Id)
	}
	store.predictions[record.Id] = record
}

func (store *LocalStore) GetPrediction(id string) (models.PredictionRecord, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	record, ok := store.predictions[id]
	if !ok {
		return models.PredictionRecord{}, errors.Wrapf(models.ErrPredictionNotFound,
			"prediction %s not found in local store", id)
	}
	return record, nil
}

// ListPredictions returns records newest first, with the total number of
// stored records before pagination.
func (store *LocalStore) ListPredictions(limit, offset int) ([]models.PredictionRecord, int) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	total := len(store.order)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.PredictionRecord{}, total
	}
	if limit <= 0 || offset+limit > total {
		limit = total - offset
	}

	records := make([]models.PredictionRecord, 0, limit)
	for i := total - 1 - offset; i >= total-offset-limit; i-- {
		records = append(records, store.predictions[store.order[i]])
	}
	return records, total
}

func (store *LocalStore) AllPredictions() []models.PredictionRecord {
	store.mu.RLock()
	defer store.mu.RUnlock()

	records := make([]models.PredictionRecord, 0, len(store.order))
	for _, id := range store.order {
		records = append(records, store.predictions[id])
	}
	return records
}

// PredictionsSince returns records with a timestamp at or after the cutoff,
// oldest first.
func (store *LocalStore) PredictionsSince(cutoff time.Time) []models.PredictionRecord {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var records []models.PredictionRecord
	for _, id := range store.order {
		record := store.predictions[id]
		if record.Timestamp.Before(cutoff) {
			continue
		}
		records = append(records, record)
	}
	return records
}

func (store *LocalStore) CountPredictions() int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return len(store.order)
}

func (store *LocalStore) AddSensorReading(reading models.SensorReading) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.readings = append(store.readings, reading)
}

// ListSensorReadings returns manual readings newest first, up to limit.
func (store *LocalStore) ListSensorReadings(limit int) []models.SensorReading {
	store.mu.RLock()
	defer store.mu.RUnlock()

	total := len(store.readings)
	if limit <= 0 || limit > total {
		limit = total
	}

	readings := make([]models.SensorReading, 0, limit)
	for i := total - 1; i >= total-limit; i-- {
		readings = append(readings, store.readings[i])
	}
	return readings
}

func (store *LocalStore) LatestSensorReading() (models.SensorReading, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if len(store.readings) == 0 {
		return models.SensorReading{}, errors.Wrap(models.ErrNoSensorReadings,
			"no sensor readings in local store")
	}
	return store.readings[len(store.readings)-1], nil
}

func (store *LocalStore) SensorReadingStats() models.SensorReadingStats {
	store.mu.RLock()
	defer store.mu.RUnlock()

	stats := models.SensorReadingStats{Count: len(store.readings)}
	if stats.Count == 0 {
		return stats
	}

	for _, reading := range store.readings {
		stats.PH += reading.PH
		stats.Temperature += reading.Temperature
		stats.TDS += reading.TDS
		stats.Turbidity += reading.Turbidity
		stats.DissolvedOxygen += reading.DissolvedOxygen
	}
	n := float64(stats.Count)
	stats.PH /= n
	stats.Temperature /= n
	stats.TDS /= n
	stats.Turbidity /= n
	stats.DissolvedOxygen /= n
	stats.LatestTimestamp = store.readings[len(store.readings)-1].Timestamp

	return stats
}
