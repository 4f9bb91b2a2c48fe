package purchase

// Log holds the outcome of loading one purchase file
type Log struct {
	Records []Record
	Lines   int // non-blank lines seen
	Errors  int // non-blank lines that did not parse
}

// addLine feeds one raw line into the log. Blank lines are ignored.
func (l *Log) addLine(line string) {
	if IsBlank(line) {
		return
	}
	l.Lines++
	if r, ok := ParseLine(line); ok {
		l.Records = append(l.Records, r)
	}
	l.Errors = l.Lines - len(l.Records)
}

// addOversized counts non-blank lines that were too long to parse
func (l *Log) addOversized(n int) {
	l.Lines += n
	l.Errors = l.Lines - len(l.Records)
}

// ByCategory returns all records matching the given category, in load order
func (l *Log) ByCategory(category string) []Record {
	var filtered []Record
	for _, r := range l.Records {
		if r.Category() == category {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
