// Package dictionary loads and stores SKK style dictionaries and serves
// conversion candidates to the engine.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var (
	ErrNotFound     = errors.New("dictionary: entry not found")
	ErrReadOnly     = errors.New("dictionary: read only")
	ErrInvalidEntry = errors.New("dictionary: invalid entry")
)

type Encoding string

const (
	EncodingUTF8  Encoding = "utf-8"
	EncodingEUCJP Encoding = "euc-jp"
)

func ParseEncoding(value string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "euc-jp", "eucjp", "euc":
		return EncodingEUCJP, nil
	default:
		return "", fmt.Errorf("unknown dictionary encoding %q", value)
	}
}

// Entry is one candidate of a reading.
type Entry struct {
	Word       string
	Annotation string
}

// Dict maps readings to candidates in preference order.
type Dict struct {
	entries map[string][]Entry
	// readings is kept sorted for serialisation.
	readings []string
}

func New() *Dict {
	return &Dict{entries: make(map[string][]Entry)}
}

// Load reads a dictionary file. A missing file is an error; callers that
// treat the user dictionary as optional check os.IsNotExist.
func Load(path string, encoding Encoding) (*Dict, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if encoding == EncodingEUCJP {
		reader = transform.NewReader(file, japanese.EUCJP.NewDecoder())
	}
	dict, err := Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return dict, nil
}

// Parse reads lines of the form "よみ /候補1/候補2;注釈/". Comment lines
// start with ";" and malformed lines are skipped.
func Parse(r io.Reader) (*Dict, error) {
	dict := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		yomi, rest, ok := strings.Cut(line, " ")
		if !ok || yomi == "" {
			continue
		}
		rest = strings.TrimSpace(rest)
		if len(rest) < 2 || !strings.HasPrefix(rest, "/") || !strings.HasSuffix(rest, "/") {
			continue
		}
		for _, field := range strings.Split(rest[1:len(rest)-1], "/") {
			if field == "" {
				continue
			}
			word, annotation, _ := strings.Cut(field, ";")
			if word == "" {
				continue
			}
			dict.append(yomi, Entry{Word: word, Annotation: annotation})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dict, nil
}

func (d *Dict) append(yomi string, entry Entry) {
	existing, ok := d.entries[yomi]
	if !ok {
		d.insertReading(yomi)
	}
	for _, e := range existing {
		if e.Word == entry.Word {
			return
		}
	}
	d.entries[yomi] = append(existing, entry)
}

func (d *Dict) insertReading(yomi string) {
	index, found := SearchValue(d.readings, yomi)
	if found {
		return
	}
	d.readings = append(d.readings, "")
	copy(d.readings[index+1:], d.readings[index:])
	d.readings[index] = yomi
}

func (d *Dict) removeReading(yomi string) {
	index, found := SearchValue(d.readings, yomi)
	if !found {
		return
	}
	d.readings = append(d.readings[:index], d.readings[index+1:]...)
}

// Refer returns the candidates of yomi.
func (d *Dict) Refer(yomi string) []Entry {
	if d == nil {
		return nil
	}
	entries := d.entries[yomi]
	if len(entries) == 0 {
		return nil
	}
	return append([]Entry(nil), entries...)
}

// Add puts entry first for yomi, moving it if the word already exists.
func (d *Dict) Add(yomi string, entry Entry) error {
	if yomi == "" || entry.Word == "" || strings.ContainsAny(yomi, " \t\n") ||
		strings.ContainsAny(entry.Word+entry.Annotation, "/;\n") {
		return fmt.Errorf("%w: %q /%s/", ErrInvalidEntry, yomi, entry.Word)
	}
	existing, ok := d.entries[yomi]
	if !ok {
		d.insertReading(yomi)
	}
	next := make([]Entry, 0, len(existing)+1)
	next = append(next, entry)
	for _, e := range existing {
		if e.Word == entry.Word {
			if entry.Annotation == "" {
				next[0].Annotation = e.Annotation
			}
			continue
		}
		next = append(next, e)
	}
	d.entries[yomi] = next
	return nil
}

// Delete removes word from yomi.
func (d *Dict) Delete(yomi, word string) error {
	existing := d.entries[yomi]
	for i, e := range existing {
		if e.Word != word {
			continue
		}
		next := append(append([]Entry(nil), existing[:i]...), existing[i+1:]...)
		if len(next) == 0 {
			delete(d.entries, yomi)
			d.removeReading(yomi)
		} else {
			d.entries[yomi] = next
		}
		return nil
	}
	return fmt.Errorf("%w: %s /%s/", ErrNotFound, yomi, word)
}

// Len is the number of readings.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.readings)
}

// IsOkuriAri reports whether the reading ends with an okurigana letter, as
// in "あr".
func IsOkuriAri(yomi string) bool {
	last, size := utf8.DecodeLastRuneInString(yomi)
	if size == 0 || size == len(yomi) {
		return false
	}
	if last > unicode.MaxASCII || !unicode.IsLower(last) {
		return false
	}
	head, _ := utf8.DecodeRuneInString(yomi)
	return head > unicode.MaxASCII
}

// WriteTo writes the dictionary in SKK order: okuri-ari readings descending,
// then okuri-nasi readings ascending.
func (d *Dict) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	write := func(s string) error {
		n, err := bw.WriteString(s)
		written += int64(n)
		return err
	}
	if err := write(";; okuri-ari entries.\n"); err != nil {
		return written, err
	}
	for i := len(d.readings) - 1; i >= 0; i-- {
		if yomi := d.readings[i]; IsOkuriAri(yomi) {
			if err := write(d.line(yomi)); err != nil {
				return written, err
			}
		}
	}
	if err := write(";; okuri-nasi entries.\n"); err != nil {
		return written, err
	}
	for _, yomi := range d.readings {
		if !IsOkuriAri(yomi) {
			if err := write(d.line(yomi)); err != nil {
				return written, err
			}
		}
	}
	return written, bw.Flush()
}

func (d *Dict) line(yomi string) string {
	var b strings.Builder
	b.WriteString(yomi)
	b.WriteString(" /")
	for _, entry := range d.entries[yomi] {
		b.WriteString(entry.Word)
		if entry.Annotation != "" {
			b.WriteString(";")
			b.WriteString(entry.Annotation)
		}
		b.WriteString("/")
	}
	b.WriteString("\n")
	return b.String()
}

// Save writes the dictionary as UTF-8, replacing path atomically.
func (d *Dict) Save(path string) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dictionary dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kanafe-jisyo-*")
	if err != nil {
		return fmt.Errorf("save dictionary %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := d.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("save dictionary %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save dictionary %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save dictionary %s: %w", path, err)
	}
	return nil
}
