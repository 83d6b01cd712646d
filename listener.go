package xlimport

// RecordListener is notified when a RecordList changes. Presentation
// layers implement it to keep a grid or table in sync.
type RecordListener interface {
	// RecordsCleared is called after the list was emptied.
	RecordsCleared()

	// RecordAdded is called after r was appended at index.
	RecordAdded(index int, r Record)
}

// ListenerFuncs adapts plain functions to RecordListener. Nil funcs are skipped.
type ListenerFuncs struct {
	Cleared func()
	Added   func(index int, r Record)
}

func (l ListenerFuncs) RecordsCleared() {
	if l.Cleared != nil {
		l.Cleared()
	}
}

func (l ListenerFuncs) RecordAdded(index int, r Record) {
	if l.Added != nil {
		l.Added(index, r)
	}
}
