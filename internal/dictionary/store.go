package dictionary

import (
	"errors"
	"fmt"
	"os"

	"kanafe/internal/state"
)

// Store answers lookups from a writable user dictionary followed by read-only
// system dictionaries. It is not safe for concurrent use.
type Store struct {
	user     *Dict
	userPath string
	system   []*Dict

	// saved describes the user file as last written by this store.
	saved os.FileInfo
}

// NewStore creates a store. user may be nil for a read-only store; when
// userPath is set every mutation is saved to it.
func NewStore(user *Dict, userPath string, system ...*Dict) *Store {
	return &Store{user: user, userPath: userPath, system: system}
}

// LoadUser loads the user dictionary at path, starting empty when the file
// does not exist yet.
func LoadUser(path string) (*Dict, error) {
	dict, err := Load(path, EncodingUTF8)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	return dict, err
}

func (s *Store) dicts() []*Dict {
	dicts := make([]*Dict, 0, len(s.system)+1)
	if s.user != nil {
		dicts = append(dicts, s.user)
	}
	return append(dicts, s.system...)
}

// Lookup returns the candidates of yomi, user entries first. Readings with
// digits also match numeral templates such as "だい#".
func (s *Store) Lookup(yomi string) []state.Candidate {
	var candidates []state.Candidate
	seen := make(map[string]struct{})
	add := func(candidate state.Candidate) {
		if _, ok := seen[candidate.Word]; ok {
			return
		}
		seen[candidate.Word] = struct{}{}
		candidates = append(candidates, candidate)
	}
	for _, dict := range s.dicts() {
		for _, entry := range dict.Refer(yomi) {
			add(state.Candidate{Word: entry.Word, Annotation: entry.Annotation})
		}
	}
	template, numbers, ok := numeralReading(yomi)
	if !ok {
		return candidates
	}
	for _, dict := range s.dicts() {
		for _, entry := range dict.Refer(template) {
			word, ok := expandNumeral(entry.Word, numbers)
			if !ok {
				continue
			}
			add(state.Candidate{
				Word:       word,
				Annotation: entry.Annotation,
				Original:   &state.CandidateOriginal{Midashi: template, Word: entry.Word},
			})
		}
	}
	return candidates
}

// Persist records word as the preferred candidate of yomi.
func (s *Store) Persist(yomi, word string) error {
	if s.user == nil {
		return ErrReadOnly
	}
	if err := s.user.Add(yomi, Entry{Word: word}); err != nil {
		return err
	}
	return s.save()
}

// Remove deletes word from the user dictionary. Entries that only exist in
// a system dictionary report ErrReadOnly.
func (s *Store) Remove(yomi, word string) error {
	if s.user != nil {
		err := s.user.Delete(yomi, word)
		if err == nil {
			return s.save()
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	for _, dict := range s.system {
		for _, entry := range dict.Refer(yomi) {
			if entry.Word == word {
				return fmt.Errorf("%w: %s /%s/ is a system entry", ErrReadOnly, yomi, word)
			}
		}
	}
	return fmt.Errorf("%w: %s /%s/", ErrNotFound, yomi, word)
}

func (s *Store) save() error {
	if s.userPath == "" {
		return nil
	}
	if err := s.user.Save(s.userPath); err != nil {
		return fmt.Errorf("persist user dictionary: %w", err)
	}
	if info, err := os.Stat(s.userPath); err == nil {
		s.saved = info
	}
	return nil
}

// ReloadUser reads the user dictionary again after another program changed
// it. It reports false when the file is the one this store wrote last.
func (s *Store) ReloadUser() (bool, error) {
	if s.userPath == "" {
		return false, nil
	}
	info, err := os.Stat(s.userPath)
	if err == nil && s.saved != nil && info.Size() == s.saved.Size() && info.ModTime().Equal(s.saved.ModTime()) {
		return false, nil
	}
	dict, err := LoadUser(s.userPath)
	if err != nil {
		return false, fmt.Errorf("reload user dictionary: %w", err)
	}
	s.user = dict
	s.saved = info
	return true, nil
}

// UserPath is the file the user dictionary is saved to.
func (s *Store) UserPath() string {
	return s.userPath
}
