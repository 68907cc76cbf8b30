package ingestion

// Observer receives load progress. Implementations must be safe for
// concurrent use; SourceLoaded and SourceSkipped may be called from pool
// workers.
type Observer interface {
	// SourceLoaded is called once per source that was parsed successfully.
	SourceLoaded(source string, records int)

	// SourceSkipped is called once per source that was ignored.
	SourceSkipped(err *SourceError)

	// DuplicatesRemoved is called once per load with the number of
	// (tool, action) duplicates dropped across all sources.
	DuplicatesRemoved(count int)
}

// noopObserver is the default observer used when none is configured.
type noopObserver struct{}

func (noopObserver) SourceLoaded(string, int)   {}
func (noopObserver) SourceSkipped(*SourceError) {}
func (noopObserver) DuplicatesRemoved(int)      {}
