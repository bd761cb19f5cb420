package appconfig

import (
	"time"

	"exusiai.dev/gazeseq/internal/app/appcontext"
)

type ConfigSpec struct {
	// DevMode to indicate development mode. When true, the logger runs at trace level.
	DevMode bool `split_words:"true"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of the rotated log file. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"stdout"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0" validate:"gte=0,lte=1"`

	// OTLPEndpoint is the gRPC endpoint of the OTLP trace receiver.
	OTLPEndpoint string `envconfig:"OTLP_ENDPOINT" default:"localhost:4317"`

	// PatternSource selects the pattern source implementation.
	// Valid values are: prefixspan (in-process miner), file (output of an external miner).
	PatternSource string `split_words:"true" default:"prefixspan" validate:"oneof=prefixspan file"`

	// PatternSourceFile is the external miner output read by the file pattern source.
	// Supported extensions are .csv and .json.
	PatternSourceFile string `split_words:"true" validate:"required_if=PatternSource file"`

	// MiningMinSupport is the minimum fraction of traces that must contain a pattern.
	MiningMinSupport float64 `split_words:"true" default:"0.5"`

	// MiningMaxGap is the maximum number of events allowed between consecutive pattern
	// symbols while mining. It is independent of CountMaxGap.
	MiningMaxGap int `split_words:"true" default:"1"`

	// MiningMaxLength caps the number of symbols in a mined pattern.
	MiningMaxLength int `split_words:"true" default:"50"`

	// MiningMaxPatternSize caps the number of distinct symbols in a mined pattern.
	MiningMaxPatternSize int `split_words:"true" default:"5"`

	// CountMaxGap is the maximum number of events allowed between consecutive pattern
	// symbols when counting occurrences. It is independent of MiningMaxGap.
	CountMaxGap int `split_words:"true" default:"1" validate:"gte=0"`

	// CountConcurrency bounds the number of occurrence-counting goroutines.
	// 0 uses GOMAXPROCS.
	CountConcurrency int `split_words:"true" default:"0" validate:"gte=0"`

	// IgnoredSymbols are AOI symbols dropped by the clean_sequences script.
	IgnoredSymbols SymbolSet `split_words:"true" default:"D"`

	// ProfilePath points to a YAML profile with reject rules and batch datasets.
	ProfilePath string `split_words:"true"`

	// OutputDir is where reports go when a dataset does not name an output file.
	OutputDir string `split_words:"true" default:"results"`

	// MetricsTextfile is the file the Prometheus metrics are written to after a run,
	// in the node_exporter textfile format. Leaving this empty disables the export.
	MetricsTextfile string `split_words:"true"`

	// ReportS3Bucket is the bucket reports are published to. Leaving this empty disables publishing.
	ReportS3Bucket string `split_words:"true"`

	// ReportS3Region is the region of ReportS3Bucket.
	ReportS3Region string `split_words:"true" default:"us-east-1"`

	// ReportS3Prefix is prepended to object keys, with no leading slash but optionally (typically) with trailing slash.
	ReportS3Prefix string `split_words:"true" default:"v1/"`

	// AWSAccessKey is the access key of the AWS account used for publishing.
	AWSAccessKey string `split_words:"true"`

	// AWSSecretKey is the secret key of the AWS account used for publishing.
	AWSSecretKey string `split_words:"true"`

	// WorkerSeparation describes the pause in-between datasets of a batch run
	WorkerSeparation time.Duration `split_words:"true" default:"0s"`

	// WorkerTimeout describes the timeout for a single dataset of a batch run
	WorkerTimeout time.Duration `required:"true" split_words:"true" default:"30m"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
