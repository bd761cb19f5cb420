package constant

// Report table columns. Participant columns are ReportParticipantColumnPrefix
// followed by the participant id.
const (
	ReportColumnSequence          = "Sequence"
	ReportColumnSequenceLength    = "Sequence_Length"
	ReportColumnUniqueAOIs        = "Unique_AOIs"
	ReportColumnSupport           = "Support"
	ReportColumnTrueSupport       = "True_Support"
	ReportColumnAvgCounts         = "Avg_Counts"
	ReportParticipantColumnPrefix = "Participant_"
)

// Summary block rows.
const (
	SummaryHeaderMetric = "Metric"
	SummaryHeaderValue  = "Value"

	SummaryNumberOfSequences     = "Number of Sequences"
	SummaryTotalAverageCounts    = "Total Average Counts"
	SummaryAverageSequenceLength = "Average Sequence Length"
	SummaryAverageUniqueAOIs     = "Average Unique AOIs"
)

const (
	ReportFormatCSV  = "csv"
	ReportFormatJSON = "json"
)

// UndefinedValue renders an undefined aggregate in CSV output.
const UndefinedValue = "NaN"
