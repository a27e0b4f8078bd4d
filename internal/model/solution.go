package model

// QuantitySummary describes one of the four values of a solved problem.
type QuantitySummary struct {
	Unit      *string `json:"unit" yaml:"unit"`
	Formatted string  `json:"formatted" yaml:"formatted"`
	Value     float64 `json:"value" yaml:"value"`
}

// Summary lists the known values and the computed unknown B2.
type Summary struct {
	A1 QuantitySummary `json:"a1" yaml:"a1"`
	B1 QuantitySummary `json:"b1" yaml:"b1"`
	A2 QuantitySummary `json:"a2" yaml:"a2"`
	B2 QuantitySummary `json:"b2" yaml:"b2"`
}

// Step is one titled step of the worked solution.
type Step struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Solution is the localized, fully rendered answer to a question.
// It is created once per solve and never mutated afterwards. Formula is the
// symbolic rule; Calculation repeats it with the numbers substituted.
type Solution struct {
	Type        ProblemType `json:"type" yaml:"type"`
	Analysis    string      `json:"analysis" yaml:"analysis"`
	Summary     Summary     `json:"summary" yaml:"summary"`
	Steps       []Step      `json:"steps" yaml:"steps"`
	Answer      string      `json:"answer" yaml:"answer"`
	Formula     string      `json:"formula" yaml:"formula"`
	Calculation string      `json:"calculation" yaml:"calculation"`
}
