package analyzer

type goAnalyzer struct{}

func (goAnalyzer) FileType() string { return "Go" }
func (goAnalyzer) Analyze(diff string) []string {
	return scanDiff(diff, []diffMatcher{
		{kind: "function", prefix: "func "},
		{kind: "struct", prefix: "type "},
		{kind: "interface", prefix: "type "},
	})
}

type jsAnalyzer struct{}

func (jsAnalyzer) FileType() string { return "JavaScript/TypeScript" }
func (jsAnalyzer) Analyze(diff string) []string {
	return scanDiff(diff, []diffMatcher{
		{kind: "function", prefix: "function "},
		{kind: "function", prefix: "const "},
		{kind: "class", prefix: "class "},
		{kind: "export", prefix: "export "},
	})
}

type rustAnalyzer struct{}

func (rustAnalyzer) FileType() string { return "Rust" }
func (rustAnalyzer) Analyze(diff string) []string {
	return scanDiff(diff, []diffMatcher{
		{kind: "function", prefix: "fn "},
		{kind: "function", prefix: "pub fn "},
		{kind: "struct", prefix: "struct "},
		{kind: "struct", prefix: "pub struct "},
		{kind: "enum", prefix: "enum "},
	})
}

type pythonAnalyzer struct{}

func (pythonAnalyzer) FileType() string { return "Python" }
func (pythonAnalyzer) Analyze(diff string) []string {
	return scanDiff(diff, []diffMatcher{
		{kind: "function", prefix: "def "},
		{kind: "class", prefix: "class "},
	})
}

type markdownAnalyzer struct{}

func (markdownAnalyzer) FileType() string { return "Markdown" }
func (markdownAnalyzer) Analyze(diff string) []string {
	return scanDiff(diff, []diffMatcher{
		{kind: "heading", prefix: "# "},
		{kind: "heading", prefix: "## "},
	})
}
