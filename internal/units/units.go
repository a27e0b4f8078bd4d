// Package units holds the static unit dictionary: canonical unit keys, their
// localized display labels and the surface forms that map onto them.
package units

import (
	"sort"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// Dimension groups units that measure the same kind of thing.
type Dimension string

// Known dimensions.
const (
	DimensionGeneric Dimension = "generic"
	DimensionCount   Dimension = "count"
	DimensionPeople  Dimension = "people"
	DimensionTime    Dimension = "time"
	DimensionLength  Dimension = "length"
	DimensionVolume  Dimension = "volume"
	DimensionMass    Dimension = "mass"
	DimensionMoney   Dimension = "money"
)

// Generic is the fallback key for quantities without a unit word.
const Generic = "unit"

// Label is the singular and plural display form of a unit in one locale.
type Label struct {
	Singular string
	Plural   string
}

// Descriptor describes a canonical unit.
type Descriptor struct {
	Labels    map[model.Locale]Label
	Key       string
	Dimension Dimension
}

func labels(deOne, deMany, enOne, enMany, zh string) map[model.Locale]Label {
	return map[model.Locale]Label{
		model.LocaleDE: {Singular: deOne, Plural: deMany},
		model.LocaleEN: {Singular: enOne, Plural: enMany},
		model.LocaleZH: {Singular: zh, Plural: zh},
	}
}

var descriptors = map[string]Descriptor{
	Generic: {Dimension: DimensionGeneric, Labels: labels("Einheit", "Einheiten", "unit", "units", "单位")},

	"piece":      {Dimension: DimensionCount, Labels: labels("Stück", "Stück", "piece", "pieces", "个")},
	"apple":      {Dimension: DimensionCount, Labels: labels("Apfel", "Äpfel", "apple", "apples", "苹果")},
	"pear":       {Dimension: DimensionCount, Labels: labels("Birne", "Birnen", "pear", "pears", "梨")},
	"egg":        {Dimension: DimensionCount, Labels: labels("Ei", "Eier", "egg", "eggs", "鸡蛋")},
	"bread_roll": {Dimension: DimensionCount, Labels: labels("Brötchen", "Brötchen", "bread roll", "bread rolls", "面包")},
	"book":       {Dimension: DimensionCount, Labels: labels("Buch", "Bücher", "book", "books", "书")},
	"notebook":   {Dimension: DimensionCount, Labels: labels("Heft", "Hefte", "notebook", "notebooks", "本子")},
	"page":       {Dimension: DimensionCount, Labels: labels("Seite", "Seiten", "page", "pages", "页")},
	"bottle":     {Dimension: DimensionCount, Labels: labels("Flasche", "Flaschen", "bottle", "bottles", "瓶")},
	"package":    {Dimension: DimensionCount, Labels: labels("Packung", "Packungen", "pack", "packs", "包")},

	"person":  {Dimension: DimensionPeople, Labels: labels("Person", "Personen", "person", "people", "人")},
	"worker":  {Dimension: DimensionPeople, Labels: labels("Arbeiter", "Arbeiter", "worker", "workers", "工人")},
	"painter": {Dimension: DimensionPeople, Labels: labels("Maler", "Maler", "painter", "painters", "油漆工")},
	"machine": {Dimension: DimensionCount, Labels: labels("Maschine", "Maschinen", "machine", "machines", "机器")},
	"pump":    {Dimension: DimensionCount, Labels: labels("Pumpe", "Pumpen", "pump", "pumps", "水泵")},
	"truck":   {Dimension: DimensionCount, Labels: labels("Lkw", "Lkws", "truck", "trucks", "卡车")},
	"cow":     {Dimension: DimensionCount, Labels: labels("Kuh", "Kühe", "cow", "cows", "牛")},

	"second": {Dimension: DimensionTime, Labels: labels("Sekunde", "Sekunden", "second", "seconds", "秒")},
	"minute": {Dimension: DimensionTime, Labels: labels("Minute", "Minuten", "minute", "minutes", "分钟")},
	"hour":   {Dimension: DimensionTime, Labels: labels("Stunde", "Stunden", "hour", "hours", "小时")},
	"day":    {Dimension: DimensionTime, Labels: labels("Tag", "Tage", "day", "days", "天")},
	"week":   {Dimension: DimensionTime, Labels: labels("Woche", "Wochen", "week", "weeks", "周")},
	"month":  {Dimension: DimensionTime, Labels: labels("Monat", "Monate", "month", "months", "个月")},
	"year":   {Dimension: DimensionTime, Labels: labels("Jahr", "Jahre", "year", "years", "年")},

	"cm":    {Dimension: DimensionLength, Labels: labels("cm", "cm", "cm", "cm", "厘米")},
	"meter": {Dimension: DimensionLength, Labels: labels("Meter", "Meter", "meter", "meters", "米")},
	"km":    {Dimension: DimensionLength, Labels: labels("km", "km", "km", "km", "公里")},

	"ml":    {Dimension: DimensionVolume, Labels: labels("ml", "ml", "ml", "ml", "毫升")},
	"liter": {Dimension: DimensionVolume, Labels: labels("Liter", "Liter", "liter", "liters", "升")},

	"gram": {Dimension: DimensionMass, Labels: labels("Gramm", "Gramm", "gram", "grams", "克")},
	"kg":   {Dimension: DimensionMass, Labels: labels("kg", "kg", "kg", "kg", "千克")},
	"ton":  {Dimension: DimensionMass, Labels: labels("Tonne", "Tonnen", "ton", "tons", "吨")},

	"cent":   {Dimension: DimensionMoney, Labels: labels("Cent", "Cent", "cent", "cents", "欧分")},
	"euro":   {Dimension: DimensionMoney, Labels: labels("Euro", "Euro", "euro", "euros", "欧元")},
	"dollar": {Dimension: DimensionMoney, Labels: labels("Dollar", "Dollar", "dollar", "dollars", "美元")},
	"yuan":   {Dimension: DimensionMoney, Labels: labels("Yuan", "Yuan", "yuan", "yuan", "元")},
}

func init() {
	for key, d := range descriptors {
		d.Key = key
		descriptors[key] = d
	}
}

// Lookup returns the descriptor for a canonical key.
func Lookup(key string) (Descriptor, bool) {
	d, ok := descriptors[key]
	return d, ok
}

// Keys returns every canonical key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(descriptors))
	for k := range descriptors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DimensionOf returns the dimension of a canonical key. Unknown and empty
// keys belong to the generic dimension.
func DimensionOf(key string) Dimension {
	if d, ok := descriptors[key]; ok {
		return d.Dimension
	}
	return DimensionGeneric
}

// LabelFor returns the display label of a unit for a value: singular when the
// value is exactly 1, plural otherwise. An empty key renders the generic unit.
func LabelFor(key string, locale model.Locale, value float64) string {
	d, ok := descriptors[key]
	if !ok {
		d = descriptors[Generic]
	}

	label, ok := d.Labels[locale]
	if !ok {
		label = d.Labels[model.DefaultLocale]
	}

	if value == 1 {
		return label.Singular
	}
	return label.Plural
}
