package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "kind")
	Short     string   // short flag without "-" (e.g., "q")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "n", "duration")
	IsFile    bool     // true if the flag takes a file path
	Section   string   // fish comment heading the flag is listed under
}

// Section headings, in output order.
var completionSections = []string{"Help and version", "Input and output", "Strategy", "Thresholds", "Benchmark and calibration", "Diagnostics"}

var thresholdValues = []string{"16", "32", "64", "32768", "65536", "262144", "1048576"}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell", Section: "Help and version"},

	{Long: "kind", Help: "Element kind", Values: []string{"int32", "float32", "bytes"}, ValueName: "kind", Section: "Input and output"},
	{Long: "input", Short: "i", Help: "Input file", IsFile: true, ValueName: "file", Section: "Input and output"},
	{Long: "output", Short: "o", Help: "Output file", IsFile: true, ValueName: "file", Section: "Input and output"},
	{Long: "quiet", Short: "q", Help: "Print only the result", Section: "Input and output"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "orange", "none"}, ValueName: "theme", Section: "Input and output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Input and output"},

	{Long: "stable", Help: "Keep equal elements in input order", Section: "Strategy"},
	{Long: "no-parallel", Help: "Never sort in parallel", Section: "Strategy"},
	{Long: "no-radix", Help: "Never use radix sort", Section: "Strategy"},
	{Long: "efficiency", Help: "Prefer energy efficiency", Section: "Strategy"},
	{Long: "force-simd", Help: "Force the lane-masked partition", Section: "Strategy"},
	{Long: "executor", Help: "Fork-join backend", Values: []string{"ants", "errgroup", "sequential"}, ValueName: "executor", Section: "Strategy"},
	{Long: "workers", Help: "Worker count", ValueName: "n", Section: "Strategy"},
	{Long: "memory-limit", Help: "Scratch memory cap", Values: []string{"16MiB", "64MiB", "256MiB", "1GiB"}, ValueName: "size", Section: "Strategy"},

	{Long: "insertion-threshold", Help: "Insertion sort cutoff", Values: thresholdValues, ValueName: "n", Section: "Thresholds"},
	{Long: "sample-size", Help: "Nearly-sorted probe count", Values: thresholdValues, ValueName: "n", Section: "Thresholds"},
	{Long: "parallel-threshold", Help: "Minimum parallel length", Values: thresholdValues, ValueName: "n", Section: "Thresholds"},
	{Long: "radix-threshold", Help: "Minimum radix length", Values: thresholdValues, ValueName: "n", Section: "Thresholds"},
	{Long: "cache-optimal", Help: "Parallel chunk working set", Values: thresholdValues, ValueName: "n", Section: "Thresholds"},

	{Long: "bench", Help: "Benchmark on n generated elements", Values: []string{"100000", "1000000", "10000000"}, ValueName: "n", Section: "Benchmark and calibration"},
	{Long: "pattern", Help: "Benchmark input pattern", Values: []string{"all", "random", "sorted", "reversed", "nearly-sorted", "few-unique"}, ValueName: "pattern", Section: "Benchmark and calibration"},
	{Long: "rounds", Help: "Timed rounds per strategy", Values: []string{"1", "3", "5", "10"}, ValueName: "n", Section: "Benchmark and calibration"},
	{Long: "gc", Help: "Collector mode during benchmarks", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode", Section: "Benchmark and calibration"},
	{Long: "timeout", Help: "Benchmark or calibration limit", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration", Section: "Benchmark and calibration"},
	{Long: "calibrate", Help: "Measure and save the parallel threshold", Section: "Benchmark and calibration"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file", Section: "Benchmark and calibration"},

	{Long: "info", Help: "Print hardware profile and thresholds", Section: "Diagnostics"},
	{Long: "metrics", Help: "Print Prometheus metrics on exit", Section: "Diagnostics"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "none"}, ValueName: "level", Section: "Diagnostics"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish") to out.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// flagNames returns the spellings of f as typed on the command line.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
	}

	var caseBody strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			filePatterns = append(filePatterns, flagNames(f)...)
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&caseBody, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(filePatterns, "|"))
	}
	for _, f := range flagRegistry {
		if f.IsFile || len(f.Values) == 0 {
			continue
		}
		fmt.Fprintf(&caseBody, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(flagNames(f), "|"), strings.Join(f.Values, " "))
	}

	script := fmt.Sprintf(`# Bash completion script for vsort
# Add this to your ~/.bashrc or ~/.bash_completion

_vsort_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _vsort_completions vsort
`, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef vsort

# Zsh completion script for vsort
# Add this to your ~/.zshrc or place in $fpath

_vsort() {
    _arguments -s \
%s
}

_vsort "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer) error {
	lines := []string{
		"# Fish completion script for vsort",
		"# Add this to ~/.config/fish/completions/vsort.fish",
		"",
		"# Disable file completion by default",
		"complete -c vsort -f",
		"",
	}
	for _, section := range completionSections {
		lines = append(lines, "# "+section)
		for _, f := range flagRegistry {
			if f.Section == section {
				lines = append(lines, fishCompleteLine(f))
			}
		}
		lines = append(lines, "")
	}

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c vsort"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
