// Package iostore persists series observations and trained models.
package iostore

import (
	"sync"

	"emistat/internal/contract"
)

// StoreManagerImpl manages the series and model store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	series       contract.SeriesStore
	models       contract.ModelStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// NewStoreManager creates a manager over already-constructed stores.
func NewStoreManager(series contract.SeriesStore, models contract.ModelStore) *StoreManagerImpl {
	return &StoreManagerImpl{series: series, models: models}
}

// GetSeriesStore returns the series store.
func (mgr *StoreManagerImpl) GetSeriesStore() contract.SeriesStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.series
}

// GetModelStore returns the trained-model store.
func (mgr *StoreManagerImpl) GetModelStore() contract.ModelStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.models
}
