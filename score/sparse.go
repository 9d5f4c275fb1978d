package score

import "github.com/avollmer/partita/model"

// RemoveSparseParts drops parts holding less than ratio of the score's
// notes and returns the names of the removed parts. The ratio is measured
// against the note count before any removal.
func RemoveSparseParts(sc *model.Score, ratio float64) []string {
	total := sc.NoteCount()
	if total == 0 {
		return nil
	}

	var removed []string
	kept := sc.Parts[:0]
	for _, part := range sc.Parts {
		share := float64(len(part.Events)) / float64(total)
		if share < ratio {
			removed = append(removed, part.Name)
			continue
		}
		kept = append(kept, part)
	}
	sc.Parts = kept
	return removed
}
