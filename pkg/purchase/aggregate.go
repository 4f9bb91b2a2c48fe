package purchase

import (
	"cmp"
	"maps"
	"slices"
)

// TotalSpent returns the sum of all record totals, 0 for no records
func TotalSpent(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Total()
	}
	return total
}

// SpentByCategory sums record totals per category. Category names are
// compared exactly; only categories present in records appear.
func SpentByCategory(records []Record) map[string]float64 {
	result := make(map[string]float64)
	for _, r := range records {
		result[r.Category()] += r.Total()
	}
	return result
}

// SortedCategories returns the keys of a SpentByCategory result in
// lexicographic order
func SortedCategories(byCategory map[string]float64) []string {
	return slices.Sorted(maps.Keys(byCategory))
}

// ByTotalDesc orders records from the largest total to the smallest
func ByTotalDesc(a, b Record) int {
	return cmp.Compare(b.Total(), a.Total())
}

// TopNExpensive returns the n records with the largest totals, most
// expensive first. Equal totals keep their input order. The input slice is
// not modified.
func TopNExpensive(records []Record, n int) []Record {
	if n <= 0 || len(records) == 0 {
		return []Record{}
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, ByTotalDesc)

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
