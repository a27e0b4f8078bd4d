package classification

import "github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"

// DefaultHints returns the built-in hint phrases for German, English and Chinese.
func DefaultHints() []Hint {
	return []Hint{
		// Explicit naming of the relationship
		{
			Name:     "Antiproportional",
			Type:     model.Antiproportional,
			Pattern:  `anti-?proportional`,
			Priority: 100,
		},
		{
			Name:     "Umgekehrt proportional",
			Type:     model.Antiproportional,
			Pattern:  `(umgekehrt|indirekt)\s+proportional`,
			Priority: 100,
		},
		{
			Name:     "Inverse proportion",
			Type:     model.Antiproportional,
			Pattern:  `invers(e|ely)\s+proportion`,
			Priority: 100,
		},
		{
			Name:     "Fanbi",
			Type:     model.Antiproportional,
			Pattern:  `反比`,
			Priority: 100,
		},

		// Comparative constructions
		{
			Name:     "Je mehr desto weniger",
			Type:     model.Antiproportional,
			Pattern:  `je\s+mehr.*desto\s+(weniger|kürzer|schneller)`,
			Priority: 90,
		},
		{
			Name:     "The more the less",
			Type:     model.Antiproportional,
			Pattern:  `the\s+more.*the\s+(less|fewer|shorter|faster)`,
			Priority: 90,
		},
		{
			Name:     "Yue duo yue shao",
			Type:     model.Antiproportional,
			Pattern:  `越多.*越(少|短|快)`,
			Priority: 90,
		},

		// Several agents sharing one job
		{
			Name:     "Wie lange brauchen",
			Type:     model.Antiproportional,
			Pattern:  `wie\s+lange\s+(brauchen|benötigen|arbeiten)`,
			Priority: 80,
		},
		{
			Name:     "How long do workers",
			Type:     model.Antiproportional,
			Pattern:  `how\s+long\s+(do|does|will|would)\s+(it\s+take\s+)?(for\s+)?(the\s+)?(\d+\s+)?(workers|people|persons|men|painters|machines|pumps|trucks)`,
			Priority: 80,
		},
		{
			Name:     "Workers finish in days",
			Type:     model.Antiproportional,
			Pattern:  `(工人|人|机器|水泵).{0,12}(多少天|几天|多久|多长时间)`,
			Priority: 80,
		},

		// Weakest hint, checked last
		{
			Name:     "Umgekehrt",
			Type:     model.Antiproportional,
			Pattern:  `umgekehrt`,
			Priority: 10,
		},
	}
}
