package iostore

import (
	"github.com/stretchr/testify/mock"

	"emistat/internal/contract"
	"emistat/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSeriesStore implements the StoreManager interface.
func (m *MockStoreManager) GetSeriesStore() contract.SeriesStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SeriesStore)
	return store
}

// GetModelStore implements the StoreManager interface.
func (m *MockStoreManager) GetModelStore() contract.ModelStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ModelStore)
	return store
}

// MockSeriesStore is a mock implementation of SeriesStore for testing.
type MockSeriesStore struct {
	mock.Mock
}

var _ contract.SeriesStore = &MockSeriesStore{} // Compile-time check

// ReplaceSeries implements the SeriesStore interface.
func (m *MockSeriesStore) ReplaceSeries(dataset, seriesKey string, points []schema.SeriesPoint) error {
	args := m.Called(dataset, seriesKey, points)
	return args.Error(0)
}

// InsertRows implements the SeriesStore interface.
func (m *MockSeriesStore) InsertRows(rows []schema.SeriesRow) error {
	args := m.Called(rows)
	return args.Error(0)
}

// GetSeries implements the SeriesStore interface.
func (m *MockSeriesStore) GetSeries(dataset, seriesKey string) ([]schema.SeriesPoint, error) {
	args := m.Called(dataset, seriesKey)
	points, _ := args.Get(0).([]schema.SeriesPoint)
	return points, args.Error(1)
}

// GetRows implements the SeriesStore interface.
func (m *MockSeriesStore) GetRows(dataset string) ([]schema.SeriesRow, error) {
	args := m.Called(dataset)
	rows, _ := args.Get(0).([]schema.SeriesRow)
	return rows, args.Error(1)
}

// ListSeriesKeys implements the SeriesStore interface.
func (m *MockSeriesStore) ListSeriesKeys(dataset string) ([]string, error) {
	args := m.Called(dataset)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

// GetStatus implements the SeriesStore interface.
func (m *MockSeriesStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SeriesStore interface.
func (m *MockSeriesStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockModelStore is a mock implementation of ModelStore for testing.
type MockModelStore struct {
	mock.Mock
}

var _ contract.ModelStore = &MockModelStore{} // Compile-time check

// SaveModel implements the ModelStore interface.
func (m *MockModelStore) SaveModel(model schema.TrainedModel) error {
	args := m.Called(model)
	return args.Error(0)
}

// GetModel implements the ModelStore interface.
func (m *MockModelStore) GetModel(seriesKey string) (schema.TrainedModel, bool, error) {
	args := m.Called(seriesKey)
	return args.Get(0).(schema.TrainedModel), args.Bool(1), args.Error(2)
}

// ListModels implements the ModelStore interface.
func (m *MockModelStore) ListModels() ([]schema.TrainedModel, error) {
	args := m.Called()
	models, _ := args.Get(0).([]schema.TrainedModel)
	return models, args.Error(1)
}

// DeleteModel implements the ModelStore interface.
func (m *MockModelStore) DeleteModel(seriesKey string) error {
	args := m.Called(seriesKey)
	return args.Error(0)
}

// GetStatus implements the ModelStore interface.
func (m *MockModelStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the ModelStore interface.
func (m *MockModelStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
