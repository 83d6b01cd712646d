package xlimport

import "iter"

// RecordList is an ordered, observable collection of records. It is not
// safe for concurrent use.
type RecordList struct {
	records   []Record
	listeners map[int]RecordListener
	order     []int
	nextID    int
}

// NewRecordList creates an empty list.
func NewRecordList() *RecordList {
	return &RecordList{listeners: make(map[int]RecordListener)}
}

// Subscribe registers l and returns a function that removes it again.
func (l *RecordList) Subscribe(listener RecordListener) (unsubscribe func()) {
	id := l.nextID
	l.nextID++
	l.listeners[id] = listener
	l.order = append(l.order, id)
	return func() {
		delete(l.listeners, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// Len returns the number of records.
func (l *RecordList) Len() int { return len(l.records) }

// At returns the record at index i.
func (l *RecordList) At(i int) Record { return l.records[i] }

// Records returns a copy of the records in insertion order.
func (l *RecordList) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// All yields records in insertion order.
func (l *RecordList) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range l.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Clear removes every record and notifies listeners.
func (l *RecordList) Clear() {
	l.records = nil
	for _, id := range l.order {
		l.listeners[id].RecordsCleared()
	}
}

// Append adds records at the end and notifies listeners once per record.
func (l *RecordList) Append(records ...Record) {
	for _, r := range records {
		l.records = append(l.records, r)
		idx := len(l.records) - 1
		for _, id := range l.order {
			l.listeners[id].RecordAdded(idx, r)
		}
	}
}

// Replace clears the list and fills it with records.
func (l *RecordList) Replace(records []Record) {
	l.Clear()
	l.Append(records...)
}
