// lextest checks the tokenizer against golden files. Every line of a case
// file is tokenized on its own and rendered as the shell would print it.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/xplshn/sipit/pkg/lexer"
	"github.com/xplshn/sipit/pkg/token"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
	StatusErr  = "ERROR"
)

type FileTestResult struct {
	File       string `json:"file"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	Diff       string `json:"diff,omitempty"`
	SourceHash string `json:"source_hash"`
	GoldenHash string `json:"golden_hash,omitempty"`
}

type TestSuiteResults map[string]*FileTestResult

var (
	testFiles  = flag.String("test-files", "testdata/*.sip", "Glob pattern(s) for case files (space-separated).")
	update     = flag.Bool("update", false, "Rewrite the golden files from the current tokenizer output.")
	outputJSON = flag.String("output", ".lextest_results.json", "Output file for the JSON test report.")
	jobs       = flag.Int("j", 4, "Number of parallel test jobs.")
	verbose    = flag.Bool("v", false, "Enable verbose logging.")
	useCache   = flag.Bool("cached", false, "Skip files unchanged since they last passed.")
)

const (
	cRed    = "\x1b[91m"
	cYellow = "\x1b[93m"
	cGreen  = "\x1b[92m"
	cCyan   = "\x1b[96m"
	cNone   = "\x1b[0m"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *jobs < 1 {
		*jobs = 1
	}

	files, err := expandGlobPatterns(*testFiles)
	if err != nil {
		log.Fatalf("%s[ERROR]%s Invalid glob pattern(s): %v\n", cRed, cNone, err)
	}
	if len(files) == 0 {
		log.Println("No test files found matching the pattern(s).")
		return
	}

	previous := make(TestSuiteResults)
	if *useCache {
		if data, err := os.ReadFile(*outputJSON); err == nil {
			if err := json.Unmarshal(data, &previous); err != nil {
				log.Printf("%s[WARN]%s Ignoring unreadable report %s: %v\n", cYellow, cNone, *outputJSON, err)
			}
		}
	}

	results := runSuite(files, previous, *jobs, *update)
	if !printSummary(results) {
		defer os.Exit(1)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("%s[ERROR]%s Failed to marshal results: %v\n", cRed, cNone, err)
	}
	if err := os.WriteFile(*outputJSON, data, 0644); err != nil {
		log.Fatalf("%s[ERROR]%s Failed to write report %s: %v\n", cRed, cNone, *outputJSON, err)
	}
}

func expandGlobPatterns(patterns string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range strings.Fields(patterns) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func goldenPath(caseFile string) string { return caseFile + ".golden" }

func hashBytes(b []byte) string { return fmt.Sprintf("%x", xxhash.Sum64(b)) }

// runSuite tests files on a pool of workers.
func runSuite(files []string, previous TestSuiteResults, workers int, update bool) TestSuiteResults {
	results := make(TestSuiteResults)
	var mu sync.Mutex
	var wg sync.WaitGroup
	queue := make(chan string)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range queue {
				res := testFile(file, previous[file], update)
				if *verbose {
					log.Printf("%s[%s]%s %s\n", cCyan, res.Status, cNone, file)
				}
				mu.Lock()
				results[file] = res
				mu.Unlock()
			}
		}()
	}
	for _, f := range files {
		queue <- f
	}
	close(queue)
	wg.Wait()
	return results
}

func testFile(file string, prev *FileTestResult, update bool) *FileTestResult {
	res := &FileTestResult{File: file}

	src, err := os.ReadFile(file)
	if err != nil {
		res.Status, res.Message = StatusErr, err.Error()
		return res
	}
	res.SourceHash = hashBytes(src)
	actual := renderCase(filepath.Base(file), string(src))

	if update {
		out := []byte(strings.Join(actual, "\n") + "\n")
		if err := os.WriteFile(goldenPath(file), out, 0644); err != nil {
			res.Status, res.Message = StatusErr, err.Error()
			return res
		}
		res.Status, res.Message, res.GoldenHash = StatusPass, "golden file updated", hashBytes(out)
		return res
	}

	golden, err := os.ReadFile(goldenPath(file))
	if errors.Is(err, os.ErrNotExist) {
		res.Status, res.Message = StatusErr, "missing golden file (run with --update)"
		return res
	} else if err != nil {
		res.Status, res.Message = StatusErr, err.Error()
		return res
	}
	res.GoldenHash = hashBytes(golden)

	if prev != nil && prev.Status == StatusPass && prev.SourceHash == res.SourceHash && prev.GoldenHash == res.GoldenHash {
		res.Status, res.Message = StatusSkip, "unchanged since last pass"
		return res
	}

	if diff := compareOutputs(splitLines(string(golden)), actual); diff != "" {
		res.Status, res.Message, res.Diff = StatusFail, "output differs from golden file", diff
		return res
	}
	res.Status = StatusPass
	return res
}

// renderCase tokenizes every line of src separately.
func renderCase(sourceName, src string) []string {
	lines := splitLines(src)
	out := make([]string, len(lines))
	for i, line := range lines {
		toks, err := lexer.Tokenize(sourceName, line)
		if err != nil {
			out[i] = strings.ReplaceAll(err.Error(), "\n", " | ")
			continue
		}
		out[i] = token.Join(toks)
	}
	return out
}

// splitLines splits on newlines, dropping the empty element after a final newline.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func compareOutputs(want, got []string) string {
	return cmp.Diff(want, got)
}

func printSummary(results TestSuiteResults) bool {
	files := make([]string, 0, len(results))
	for f := range results {
		files = append(files, f)
	}
	sort.Strings(files)

	counts := make(map[string]int)
	for _, f := range files {
		res := results[f]
		counts[res.Status]++
		switch res.Status {
		case StatusPass:
			log.Printf("%s[PASS]%s %s %s\n", cGreen, cNone, f, res.Message)
		case StatusSkip:
			log.Printf("%s[SKIP]%s %s (%s)\n", cYellow, cNone, f, res.Message)
		case StatusFail:
			log.Printf("%s[FAIL]%s %s: %s\n%s", cRed, cNone, f, res.Message, res.Diff)
		default:
			log.Printf("%s[ERROR]%s %s: %s\n", cRed, cNone, f, res.Message)
		}
	}
	log.Printf("\n%d passed, %d failed, %d errors, %d skipped\n",
		counts[StatusPass], counts[StatusFail], counts[StatusErr], counts[StatusSkip])
	return counts[StatusFail] == 0 && counts[StatusErr] == 0
}
