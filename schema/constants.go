package schema

// Custom string types for type safety.
type (
	// ActivationKind represents one of the closed set of activation labels.
	ActivationKind string

	// ChartKind represents the chart aggregation requested.
	ChartKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for storage.
	DatabaseBackend string
)

// All activation kinds supported, in enumeration order.
const (
	ReluActivation    ActivationKind = "relu"
	TanhActivation    ActivationKind = "tanh"
	SigmoidActivation ActivationKind = "sigmoid"
)

// All chart kinds supported.
const (
	YearlyChart  ChartKind = "yearly"  // totals by year across series (line/area/bar)
	ShareChart   ChartKind = "share"   // per-key share of a single year (pie/donut)
	SummaryChart ChartKind = "summary" // per-key descriptive stats (radar)
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllActivationKinds returns all activation kinds in enumeration order.
var AllActivationKinds = []ActivationKind{ReluActivation, TanhActivation, SigmoidActivation}

// OptimizerNames is the fixed set of descriptive optimizer labels.
var OptimizerNames = []string{"adam", "sgd", "rmsprop", "adagrad"}

// ValidChartKinds lists all valid chart kinds.
var ValidChartKinds = map[ChartKind]struct{}{
	YearlyChart:  {},
	ShareChart:   {},
	SummaryChart: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
