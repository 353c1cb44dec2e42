package dictionary

import (
	"strings"

	"golang.org/x/text/width"
)

// numeralReading replaces every run of ASCII digits in yomi with "#".
// "だい12かい" becomes "だい#かい" with numbers ["12"].
func numeralReading(yomi string) (string, []string, bool) {
	var (
		b       strings.Builder
		numbers []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			numbers = append(numbers, current.String())
			current.Reset()
			b.WriteByte('#')
		}
	}
	for _, r := range yomi {
		if r >= '0' && r <= '9' {
			current.WriteRune(r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	if len(numbers) == 0 {
		return "", nil, false
	}
	return b.String(), numbers, true
}

// expandNumeral fills the "#" placeholders of a template word with numbers
// in order. "#" and "#0" keep the digits, "#1" uses full-width digits, "#2"
// kanji digits and "#3" kanji numerals with units. "#4" to "#9" are not
// supported and stay in the word as written. ok is false when the template
// does not use every number.
func expandNumeral(word string, numbers []string) (string, bool) {
	var b strings.Builder
	used := 0
	for i := 0; i < len(word); i++ {
		if word[i] != '#' {
			b.WriteByte(word[i])
			continue
		}
		kind := byte('0')
		if i+1 < len(word) && word[i+1] >= '0' && word[i+1] <= '9' {
			kind = word[i+1]
			if kind > '3' {
				b.WriteByte('#')
				continue
			}
			i++
		}
		if used >= len(numbers) {
			return "", false
		}
		number := numbers[used]
		used++
		switch kind {
		case '1':
			b.WriteString(width.Widen.String(number))
		case '2':
			b.WriteString(kanjiDigits(number))
		case '3':
			b.WriteString(kanjiNumber(number))
		default:
			b.WriteString(number)
		}
	}
	return b.String(), used == len(numbers)
}

var kanjiDigit = [...]string{"〇", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

func kanjiDigits(number string) string {
	var b strings.Builder
	for _, r := range number {
		b.WriteString(kanjiDigit[r-'0'])
	}
	return b.String()
}

var (
	smallUnits = [...]string{"", "十", "百", "千"}
	largeUnits = [...]string{"", "万", "億", "兆", "京"}
)

// kanjiNumber writes 1024 as "千二十四". Numbers too large for the unit
// table fall back to plain kanji digits.
func kanjiNumber(number string) string {
	number = strings.TrimLeft(number, "0")
	if number == "" {
		return kanjiDigit[0]
	}
	if len(number) > 4*len(largeUnits) {
		return kanjiDigits(number)
	}
	var b strings.Builder
	for pos, r := range number {
		place := len(number) - 1 - pos
		digit := int(r - '0')
		if digit != 0 {
			if digit != 1 || place%4 == 0 {
				b.WriteString(kanjiDigit[digit])
			}
			b.WriteString(smallUnits[place%4])
		}
		if place%4 == 0 && place > 0 && groupHasDigits(number, place) {
			b.WriteString(largeUnits[place/4])
		}
	}
	return b.String()
}

// groupHasDigits reports whether the four digit group ending at place is
// not all zeros.
func groupHasDigits(number string, place int) bool {
	end := len(number) - place
	start := max(end-4, 0)
	return strings.Trim(number[start:end], "0") != ""
}
