package i18n

import (
	"fmt"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// Values are the already formatted pieces a template may refer to.
type Values struct {
	A1, B1, A2, B2 string // number followed by its unit label

	A1Number, B1Number, A2Number, B2Number string

	BaseOne     string // "1" followed by the singular base unit
	UnitValue   string // B1 / A1 with the target unit
	UnitNumber  string // B1 / A1 without unit
	Product     string // A1 × B1 without unit
	BaseUnits   string // plural label of the base unit
	TargetUnits string // plural label of the target unit
}

// Labels are the fixed captions used by the terminal front ends.
type Labels struct {
	Question string
	Analysis string
	Steps    string
	Answer   string
	Formula  string
	Locale   string
	Help     string
}

// Texts is the immutable template table of one locale.
type Texts struct {
	TypeNames map[model.ProblemType]string
	Errors    map[common.Code]string

	Analysis map[model.ProblemType]func(Values) string

	ProportionalStepTitles     [2]string
	AntiproportionalStepTitles [2]string

	UnitStep    func(Values) string
	ScaleStep   func(Values) string
	ProductStep func(Values) string
	DivideStep  func(Values) string

	Answer func(Values) string

	Labels Labels
}

var table = map[model.Locale]*Texts{
	model.LocaleDE: {
		TypeNames: map[model.ProblemType]string{
			model.Proportional:     "proportional",
			model.Antiproportional: "antiproportional",
		},
		Errors: map[common.Code]string{
			common.CodeTooShort:         "Die Frage ist zu kurz. Bitte beschreibe die Aufgabe genauer (mindestens 12 Zeichen).",
			common.CodeMissingNumbers:   "Es wurden weniger als drei Zahlen gefunden. Bitte gib alle bekannten Werte an.",
			common.CodeParseError:       "Die Größen konnten nicht eindeutig zugeordnet werden. Bitte gib die Einheiten klarer an.",
			common.CodeUnknown:          "Unbekannter Fehler. Bitte versuche es später erneut.",
			common.CodeMethodNotAllowed: "Diese Methode wird nicht unterstützt.",
			common.CodeNotFound:         "Der Eintrag wurde nicht gefunden.",
		},
		Analysis: map[model.ProblemType]func(Values) string{
			model.Proportional: func(v Values) string {
				return fmt.Sprintf("Proportionaler Dreisatz: Je mehr %s, desto mehr %s.", v.BaseUnits, v.TargetUnits)
			},
			model.Antiproportional: func(v Values) string {
				return fmt.Sprintf("Antiproportionaler Dreisatz: Je mehr %s, desto weniger %s.", v.BaseUnits, v.TargetUnits)
			},
		},
		ProportionalStepTitles:     [2]string{"Schritt 1: Auf eine Einheit schließen", "Schritt 2: Auf die gesuchte Menge hochrechnen"},
		AntiproportionalStepTitles: [2]string{"Schritt 1: Gesamtmenge berechnen", "Schritt 2: Auf die neue Menge verteilen"},
		UnitStep: func(v Values) string {
			return fmt.Sprintf("%s entsprechen %s. Für %s: %s ÷ %s = %s.", v.A1, v.B1, v.BaseOne, v.B1Number, v.A1Number, v.UnitValue)
		},
		ScaleStep: func(v Values) string {
			return fmt.Sprintf("Für %s: %s × %s = %s.", v.A2, v.UnitNumber, v.A2Number, v.B2)
		},
		ProductStep: func(v Values) string {
			return fmt.Sprintf("%s und %s ergeben zusammen: %s × %s = %s.", v.A1, v.B1, v.A1Number, v.B1Number, v.Product)
		},
		DivideStep: func(v Values) string {
			return fmt.Sprintf("Verteilt auf %s: %s ÷ %s = %s.", v.A2, v.Product, v.A2Number, v.B2)
		},
		Answer: func(v Values) string {
			return fmt.Sprintf("Antwort: Für %s ergeben sich %s.", v.A2, v.B2)
		},
		Labels: Labels{
			Question: "Frage",
			Analysis: "Analyse",
			Steps:    "Lösungsweg",
			Answer:   "Antwort",
			Formula:  "Formel",
			Locale:   "Sprache",
			Help:     "Enter: lösen · Strg+L: Sprache · Esc: beenden",
		},
	},
	model.LocaleEN: {
		TypeNames: map[model.ProblemType]string{
			model.Proportional:     "proportional",
			model.Antiproportional: "inversely proportional",
		},
		Errors: map[common.Code]string{
			common.CodeTooShort:         "The question is too short. Please describe the problem in more detail (at least 12 characters).",
			common.CodeMissingNumbers:   "Fewer than three numbers were found. Please state all known values.",
			common.CodeParseError:       "The quantities could not be matched. Please state the units more clearly.",
			common.CodeUnknown:          "Unknown error. Please try again later.",
			common.CodeMethodNotAllowed: "This method is not supported.",
			common.CodeNotFound:         "The entry was not found.",
		},
		Analysis: map[model.ProblemType]func(Values) string{
			model.Proportional: func(v Values) string {
				return fmt.Sprintf("Direct proportion: the more %s, the more %s.", v.BaseUnits, v.TargetUnits)
			},
			model.Antiproportional: func(v Values) string {
				return fmt.Sprintf("Inverse proportion: the more %s, the fewer %s.", v.BaseUnits, v.TargetUnits)
			},
		},
		ProportionalStepTitles:     [2]string{"Step 1: Reduce to one unit", "Step 2: Scale to the requested amount"},
		AntiproportionalStepTitles: [2]string{"Step 1: Compute the total", "Step 2: Divide by the new amount"},
		UnitStep: func(v Values) string {
			return fmt.Sprintf("%s correspond to %s. For %s: %s ÷ %s = %s.", v.A1, v.B1, v.BaseOne, v.B1Number, v.A1Number, v.UnitValue)
		},
		ScaleStep: func(v Values) string {
			return fmt.Sprintf("For %s: %s × %s = %s.", v.A2, v.UnitNumber, v.A2Number, v.B2)
		},
		ProductStep: func(v Values) string {
			return fmt.Sprintf("%s and %s give a total of: %s × %s = %s.", v.A1, v.B1, v.A1Number, v.B1Number, v.Product)
		},
		DivideStep: func(v Values) string {
			return fmt.Sprintf("Shared by %s: %s ÷ %s = %s.", v.A2, v.Product, v.A2Number, v.B2)
		},
		Answer: func(v Values) string {
			return fmt.Sprintf("Answer: %s correspond to %s.", v.A2, v.B2)
		},
		Labels: Labels{
			Question: "Question",
			Analysis: "Analysis",
			Steps:    "Steps",
			Answer:   "Answer",
			Formula:  "Formula",
			Locale:   "Language",
			Help:     "enter: solve · ctrl+l: language · esc: quit",
		},
	},
	model.LocaleZH: {
		TypeNames: map[model.ProblemType]string{
			model.Proportional:     "正比例",
			model.Antiproportional: "反比例",
		},
		Errors: map[common.Code]string{
			common.CodeTooShort:         "问题太短，请更详细地描述题目（至少 12 个字符）。",
			common.CodeMissingNumbers:   "找到的数字少于三个，请给出所有已知数值。",
			common.CodeParseError:       "无法确定各数量之间的对应关系，请写清楚单位。",
			common.CodeUnknown:          "未知错误，请稍后再试。",
			common.CodeMethodNotAllowed: "不支持该请求方法。",
			common.CodeNotFound:         "未找到该记录。",
		},
		Analysis: map[model.ProblemType]func(Values) string{
			model.Proportional: func(v Values) string {
				return fmt.Sprintf("这是正比例问题：%s越多，%s越多。", v.BaseUnits, v.TargetUnits)
			},
			model.Antiproportional: func(v Values) string {
				return fmt.Sprintf("这是反比例问题：%s越多，%s越少。", v.BaseUnits, v.TargetUnits)
			},
		},
		ProportionalStepTitles:     [2]string{"第一步：求单位量", "第二步：求所求数量"},
		AntiproportionalStepTitles: [2]string{"第一步：求总量", "第二步：按新数量平均分配"},
		UnitStep: func(v Values) string {
			return fmt.Sprintf("%s对应%s。每%s：%s ÷ %s = %s。", v.A1, v.B1, v.BaseOne, v.B1Number, v.A1Number, v.UnitValue)
		},
		ScaleStep: func(v Values) string {
			return fmt.Sprintf("%s：%s × %s = %s。", v.A2, v.UnitNumber, v.A2Number, v.B2)
		},
		ProductStep: func(v Values) string {
			return fmt.Sprintf("%s和%s的总量：%s × %s = %s。", v.A1, v.B1, v.A1Number, v.B1Number, v.Product)
		},
		DivideStep: func(v Values) string {
			return fmt.Sprintf("分给%s：%s ÷ %s = %s。", v.A2, v.Product, v.A2Number, v.B2)
		},
		Answer: func(v Values) string {
			return fmt.Sprintf("答：%s对应%s。", v.A2, v.B2)
		},
		Labels: Labels{
			Question: "问题",
			Analysis: "分析",
			Steps:    "解题步骤",
			Answer:   "答案",
			Formula:  "公式",
			Locale:   "语言",
			Help:     "回车：求解 · Ctrl+L：切换语言 · Esc：退出",
		},
	},
}

// For returns the texts of loc, falling back to the default locale.
func For(loc model.Locale) *Texts {
	if t, ok := table[loc]; ok {
		return t
	}
	return table[model.DefaultLocale]
}

// ErrorMessage returns the localized message for an outcome code.
// Unknown codes render the UNKNOWN message.
func ErrorMessage(code common.Code, loc model.Locale) string {
	t := For(loc)
	if msg, ok := t.Errors[code]; ok {
		return msg
	}
	return t.Errors[common.CodeUnknown]
}

// Quantity renders a number with its unit label, e.g. "2,5 Euro" or "3个工人".
func Quantity(formatted, label string, loc model.Locale) string {
	if label == "" {
		return formatted
	}
	if loc == model.LocaleZH {
		return formatted + label
	}
	return formatted + " " + label
}

// Symbolic formulas of the two problem types.
const (
	ProportionalFormula     = "B2 = B1 × (A2 / A1)"
	AntiproportionalFormula = "B2 = (A1 × B1) / A2"
)

// ProportionalCalculation is the proportional formula with the numbers substituted.
func ProportionalCalculation(v Values) string {
	return fmt.Sprintf("B2 = %s × (%s / %s) = %s", v.B1Number, v.A2Number, v.A1Number, v.B2Number)
}

// AntiproportionalCalculation is the antiproportional formula with the numbers substituted.
func AntiproportionalCalculation(v Values) string {
	return fmt.Sprintf("B2 = (%s × %s) / %s = %s", v.A1Number, v.B1Number, v.A2Number, v.B2Number)
}
