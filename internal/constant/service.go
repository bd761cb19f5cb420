package constant

const (
	PatternSourcePrefixSpan = "prefixspan"
	PatternSourceFile       = "file"
)

// Analysis stages, used as metric labels and span names.
const (
	StageLoad      = "load"
	StageBuild     = "build_traces"
	StageMine      = "mine_patterns"
	StageCount     = "count_occurrences"
	StageMetadata  = "compute_metadata"
	StageSummarize = "summarize"
)
