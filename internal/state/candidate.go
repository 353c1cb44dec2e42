package state

// CandidateOriginal keeps the dictionary entry a numeral candidate was
// expanded from, e.g. midashi "だい#" and word "第#" for the candidate "第5".
type CandidateOriginal struct {
	Midashi string
	Word    string
}

type Candidate struct {
	Word       string
	Annotation string
	Original   *CandidateOriginal
}

func NewCandidate(word string) Candidate {
	return Candidate{Word: word}
}

// ToMidashiString returns the reading the candidate is stored under.
func (c Candidate) ToMidashiString(yomi string) string {
	if c.Original != nil {
		return c.Original.Midashi
	}
	return yomi
}

// CandidateString returns the word as stored in the dictionary.
func (c Candidate) CandidateString() string {
	if c.Original != nil {
		return c.Original.Word
	}
	return c.Word
}

func cloneCandidates(src []Candidate) []Candidate {
	if src == nil {
		return nil
	}
	dst := make([]Candidate, len(src))
	for i, candidate := range src {
		dst[i] = candidate
		if candidate.Original != nil {
			original := *candidate.Original
			dst[i].Original = &original
		}
	}
	return dst
}
