package annotations

// Labeled returns the records carrying at least one label
func Labeled(records []FrameRecord) []FrameRecord {
	return filterRecords(records, func(r FrameRecord) bool { return !r.IsUnlabeled() })
}

// Unlabeled returns the records carrying no label at all
func Unlabeled(records []FrameRecord) []FrameRecord {
	return filterRecords(records, FrameRecord.IsUnlabeled)
}

// WithUsability returns the records tagged with usability u
func WithUsability(records []FrameRecord, u Usability) []FrameRecord {
	return filterRecords(records, func(r FrameRecord) bool { return r.UsabilityIs(u) })
}

// Calving returns the records with a qualifying calving box
func Calving(records []FrameRecord) []FrameRecord {
	return filterRecords(records, FrameRecord.IsCalving)
}

func filterRecords(records []FrameRecord, keep func(FrameRecord) bool) []FrameRecord {
	var out []FrameRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
