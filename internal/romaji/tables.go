package romaji

var vowels = []string{"a", "i", "u", "e", "o"}

var rows = map[string][]string{
	"":   {"あ", "い", "う", "え", "お"},
	"k":  {"か", "き", "く", "け", "こ"},
	"s":  {"さ", "し", "す", "せ", "そ"},
	"t":  {"た", "ち", "つ", "て", "と"},
	"n":  {"な", "に", "ぬ", "ね", "の"},
	"h":  {"は", "ひ", "ふ", "へ", "ほ"},
	"m":  {"ま", "み", "む", "め", "も"},
	"y":  {"や", "い", "ゆ", "いぇ", "よ"},
	"r":  {"ら", "り", "る", "れ", "ろ"},
	"w":  {"わ", "うぃ", "う", "うぇ", "を"},
	"g":  {"が", "ぎ", "ぐ", "げ", "ご"},
	"z":  {"ざ", "じ", "ず", "ぜ", "ぞ"},
	"d":  {"だ", "ぢ", "づ", "で", "ど"},
	"b":  {"ば", "び", "ぶ", "べ", "ぼ"},
	"p":  {"ぱ", "ぴ", "ぷ", "ぺ", "ぽ"},
	"f":  {"ふぁ", "ふぃ", "ふ", "ふぇ", "ふぉ"},
	"j":  {"じゃ", "じ", "じゅ", "じぇ", "じょ"},
	"v":  {"ゔぁ", "ゔぃ", "ゔ", "ゔぇ", "ゔぉ"},
	"x":  {"ぁ", "ぃ", "ぅ", "ぇ", "ぉ"},
	"ky": {"きゃ", "きぃ", "きゅ", "きぇ", "きょ"},
	"sy": {"しゃ", "しぃ", "しゅ", "しぇ", "しょ"},
	"sh": {"しゃ", "し", "しゅ", "しぇ", "しょ"},
	"ty": {"ちゃ", "ちぃ", "ちゅ", "ちぇ", "ちょ"},
	"ch": {"ちゃ", "ち", "ちゅ", "ちぇ", "ちょ"},
	"cy": {"ちゃ", "ちぃ", "ちゅ", "ちぇ", "ちょ"},
	"ny": {"にゃ", "にぃ", "にゅ", "にぇ", "にょ"},
	"hy": {"ひゃ", "ひぃ", "ひゅ", "ひぇ", "ひょ"},
	"my": {"みゃ", "みぃ", "みゅ", "みぇ", "みょ"},
	"ry": {"りゃ", "りぃ", "りゅ", "りぇ", "りょ"},
	"gy": {"ぎゃ", "ぎぃ", "ぎゅ", "ぎぇ", "ぎょ"},
	"zy": {"じゃ", "じぃ", "じゅ", "じぇ", "じょ"},
	"jy": {"じゃ", "じぃ", "じゅ", "じぇ", "じょ"},
	"dy": {"ぢゃ", "ぢぃ", "ぢゅ", "ぢぇ", "ぢょ"},
	"dh": {"でゃ", "でぃ", "でゅ", "でぇ", "でょ"},
	"th": {"てゃ", "てぃ", "てゅ", "てぇ", "てょ"},
	"by": {"びゃ", "びぃ", "びゅ", "びぇ", "びょ"},
	"py": {"ぴゃ", "ぴぃ", "ぴゅ", "ぴぇ", "ぴょ"},
	"xy": {"ゃ", "", "ゅ", "", "ょ"},
}

var specials = map[string]Rule{
	"nn":   {Moji: N},
	"n'":   {Moji: N},
	"tsu":  {Moji: Moji{FirstRomaji: "t", Kana: "つ"}},
	"xtu":  {Moji: Moji{FirstRomaji: "x", Kana: "っ"}},
	"xtsu": {Moji: Moji{FirstRomaji: "x", Kana: "っ"}},
	"xwa":  {Moji: Moji{FirstRomaji: "x", Kana: "ゎ"}},
	"xka":  {Moji: Moji{FirstRomaji: "x", Kana: "ゕ"}},
	"xke":  {Moji: Moji{FirstRomaji: "x", Kana: "ゖ"}},
	"wyi":  {Moji: Moji{FirstRomaji: "w", Kana: "ゐ"}},
	"wye":  {Moji: Moji{FirstRomaji: "w", Kana: "ゑ"}},
	"-":    {Moji: Moji{Kana: "ー"}},
	",":    {Moji: Moji{Kana: "、"}},
	".":    {Moji: Moji{Kana: "。"}},
	"[":    {Moji: Moji{Kana: "「"}},
	"]":    {Moji: Moji{Kana: "」"}},
	"z,":   {Moji: Moji{FirstRomaji: "z", Kana: "‥"}},
	"z.":   {Moji: Moji{FirstRomaji: "z", Kana: "…"}},
	"z/":   {Moji: Moji{FirstRomaji: "z", Kana: "・"}},
	"z-":   {Moji: Moji{FirstRomaji: "z", Kana: "〜"}},
	"zh":   {Moji: Moji{FirstRomaji: "z", Kana: "←"}},
	"zj":   {Moji: Moji{FirstRomaji: "z", Kana: "↓"}},
	"zk":   {Moji: Moji{FirstRomaji: "z", Kana: "↑"}},
	"zl":   {Moji: Moji{FirstRomaji: "z", Kana: "→"}},
}

var doubled = "bcdfghjkmprstvwxyz"

// DefaultTable returns the built-in Hepburn style table.
func DefaultTable() *Table {
	table := NewTable()
	for consonant, kanas := range rows {
		for i, value := range kanas {
			if value == "" {
				continue
			}
			first := consonant
			if first == "" {
				first = vowels[i]
			}
			table.Add(consonant+vowels[i], Rule{Moji: Moji{FirstRomaji: first[:1], Kana: value}})
		}
	}
	for key, rule := range specials {
		table.Add(key, rule)
	}
	for _, c := range doubled {
		letter := string(c)
		table.Add(letter+letter, Rule{Moji: Moji{FirstRomaji: letter, Kana: "っ"}, Remain: letter})
	}
	return table
}
