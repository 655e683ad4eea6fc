package domain

// PaperSummaryID returns the deterministic record id for a paper summary.
// The upgrade workflow depends on this determinism: it lets a summary be
// found by direct id lookup instead of scanning the store, and it makes
// re-discovery overwrite the summary instead of duplicating it.
func PaperSummaryID(paperID string) string {
	return "ss_" + paperID
}
