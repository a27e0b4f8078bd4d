package units

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// surfaceForms lists the spellings, abbreviations and inflections per canonical key.
var surfaceForms = map[string][]string{
	Generic: {"einheit", "einheiten", "unit", "units", "单位"},

	"piece":      {"stück", "stueck", "stk", "piece", "pieces", "pcs", "个", "件"},
	"apple":      {"apfel", "äpfel", "aepfel", "apple", "apples", "苹果"},
	"pear":       {"birne", "birnen", "pear", "pears", "梨"},
	"egg":        {"ei", "eier", "egg", "eggs", "鸡蛋"},
	"bread_roll": {"brötchen", "broetchen", "roll", "rolls", "面包"},
	"book":       {"buch", "bücher", "buecher", "book", "books", "书"},
	"notebook":   {"heft", "hefte", "heften", "notebook", "notebooks", "本子", "笔记本"},
	"page":       {"seite", "seiten", "page", "pages", "页"},
	"bottle":     {"flasche", "flaschen", "bottle", "bottles", "瓶"},
	"package":    {"packung", "packungen", "pack", "packs", "package", "packages", "包"},

	"person":  {"person", "personen", "leute", "menschen", "persons", "people", "人"},
	"worker":  {"arbeiter", "arbeiterin", "arbeiterinnen", "arbeitern", "worker", "workers", "工人"},
	"painter": {"maler", "malern", "malerin", "malerinnen", "painter", "painters", "油漆工", "画家"},
	"machine": {"maschine", "maschinen", "machine", "machines", "机器"},
	"pump":    {"pumpe", "pumpen", "pump", "pumps", "水泵", "抽水机"},
	"truck":   {"lkw", "lkws", "lastwagen", "truck", "trucks", "lorry", "lorries", "卡车"},
	"cow":     {"kuh", "kühe", "kuehe", "cow", "cows", "牛"},

	"second": {"sekunde", "sekunden", "sek", "s", "sec", "secs", "second", "seconds", "秒"},
	"minute": {"minute", "minuten", "min", "mins", "minutes", "分钟"},
	"hour":   {"stunde", "stunden", "std", "h", "hr", "hrs", "hour", "hours", "小时", "钟头"},
	"day":    {"tag", "tage", "tagen", "day", "days", "天", "日"},
	"week":   {"woche", "wochen", "week", "weeks", "周", "星期"},
	"month":  {"monat", "monate", "monaten", "month", "months", "月"},
	"year":   {"jahr", "jahre", "jahren", "year", "years", "年"},

	"cm":    {"cm", "zentimeter", "centimeter", "centimeters", "centimetre", "centimetres", "厘米"},
	"meter": {"m", "meter", "metern", "meters", "metre", "metres", "米"},
	"km":    {"km", "kilometer", "kilometern", "kilometers", "kilometre", "kilometres", "公里", "千米"},

	"ml":    {"ml", "milliliter", "millilitern", "milliliters", "millilitre", "millilitres", "毫升"},
	"liter": {"l", "liter", "litern", "liters", "litre", "litres", "升", "公升"},

	"gram": {"g", "gramm", "gram", "grams", "gramme", "grammes", "克"},
	"kg":   {"kg", "kilogramm", "kilo", "kilos", "kilogram", "kilograms", "千克", "公斤"},
	"ton":  {"t", "tonne", "tonnen", "ton", "tons", "吨"},

	"cent":   {"cent", "cents", "ct", "欧分"},
	"euro":   {"euro", "euros", "eur", "€", "欧元"},
	"dollar": {"dollar", "dollars", "usd", "$", "美元"},
	"yuan":   {"yuan", "rmb", "cny", "¥", "元", "块", "人民币"},
}

// measureWords are Chinese classifiers that only win a match when nothing
// more specific is present in the same token.
var measureWords = map[string]bool{"个": true, "件": true}

var (
	synonyms    = make(map[string]string)
	hanSynonyms []string
)

func init() {
	for key, forms := range surfaceForms {
		for _, form := range forms {
			normalized := norm.NFC.String(strings.ToLower(form))
			synonyms[normalized] = key
			if containsHan(normalized) {
				hanSynonyms = append(hanSynonyms, normalized)
			}
		}
	}
	sort.Strings(hanSynonyms)
}

// Synonyms returns a copy of the surface form table.
func Synonyms() map[string]string {
	out := make(map[string]string, len(synonyms))
	for k, v := range synonyms {
		out[k] = v
	}
	return out
}

// Residue lower-cases a token and keeps only letters, currency symbols and
// the percent sign.
func Residue(token string) string {
	// Chains carry buffers, so each call builds its own.
	t := transform.Chain(
		norm.NFC,
		runes.Map(unicode.ToLower),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.Is(unicode.Sc, r) && r != '%'
		})),
	)
	residue, _, err := transform.String(t, token)
	if err != nil {
		return ""
	}
	return residue
}

// Match resolves a token to a canonical unit key. Latin tokens must match a
// surface form exactly after reduction to their residue; tokens containing
// Han characters may also contain the surface form anywhere, since Chinese
// text carries no spaces between words.
func Match(token string) (string, bool) {
	residue := Residue(token)
	if residue == "" {
		return "", false
	}

	if key, ok := synonyms[residue]; ok {
		return key, true
	}

	if containsHan(residue) {
		return matchHan(residue)
	}

	return "", false
}

// matchHan picks the surface form occurring earliest in s, preferring the
// longest on ties and skipping bare measure words when anything else matches.
func matchHan(s string) (string, bool) {
	bestForm := ""
	bestIndex := -1
	fallback := ""

	for _, form := range hanSynonyms {
		idx := strings.Index(s, form)
		if idx < 0 {
			continue
		}
		if measureWords[form] {
			if fallback == "" {
				fallback = form
			}
			continue
		}
		if bestIndex == -1 || idx < bestIndex || (idx == bestIndex && len(form) > len(bestForm)) {
			bestForm = form
			bestIndex = idx
		}
	}

	if bestForm != "" {
		return synonyms[bestForm], true
	}
	if fallback != "" {
		return synonyms[fallback], true
	}
	return "", false
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// ContainsHan reports whether s contains at least one Han character.
func ContainsHan(s string) bool {
	return containsHan(s)
}
