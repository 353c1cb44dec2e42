package state

// Page is the slice of candidates shown in the candidate panel.
type Page struct {
	Words []Candidate
	// Current is zero based.
	Current int
	Total   int
}

// Page returns the page holding the selected candidate. A non-positive
// pageSize puts every candidate on one page.
func (s SelectingState) Page(pageSize int) Page {
	count := len(s.Candidates)
	if count == 0 {
		return Page{}
	}
	if pageSize <= 0 {
		pageSize = count
	}
	total := (count + pageSize - 1) / pageSize
	current := s.CandidateIndex / pageSize
	if current < 0 {
		current = 0
	} else if current >= total {
		current = total - 1
	}
	start := current * pageSize
	end := min(start+pageSize, count)
	return Page{Words: cloneCandidates(s.Candidates[start:end]), Current: current, Total: total}
}

// IndexInPage is the position of the selected candidate inside its page.
func (s SelectingState) IndexInPage(pageSize int) int {
	if pageSize <= 0 {
		return s.CandidateIndex
	}
	return s.CandidateIndex % pageSize
}
