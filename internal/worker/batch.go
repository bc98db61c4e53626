package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Checker verifies a single claim, given either raw text or an article URL
type Checker interface {
	CheckText(ctx context.Context, text string) (*model.VerificationResult, error)
	CheckURL(ctx context.Context, url string) (*model.VerificationResult, error)
}

// CheckJob verifies one batch line. A line starting with http:// or
// https:// is treated as an article URL, anything else as claim text.
type CheckJob struct {
	Line    string
	Checker Checker
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	var result *model.VerificationResult
	var err error

	if isURL(j.Line) {
		result, err = j.Checker.CheckURL(ctx, j.Line)
	} else {
		result, err = j.Checker.CheckText(ctx, j.Line)
	}

	return &CheckResult{
		Line:   j.Line,
		Result: result,
		Error:  err,
	}
}

// CheckResult represents the result of a batch check job
type CheckResult struct {
	Line   string
	Result *model.VerificationResult
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple claims concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessLines verifies multiple claims or URLs concurrently
func (b *BatchProcessor) ProcessLines(ctx context.Context, lines []string) []*CheckResult {
	if len(lines) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start(ctx)

	for _, line := range lines {
		pool.Submit(&CheckJob{
			Line:    line,
			Checker: b.checker,
		})
	}

	results := pool.Wait()

	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}

	return checkResults
}

// ProcessFile reads claims from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*CheckResult, error) {
	lines, err := ReadLinesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessLines(ctx, lines), nil
}

// ReadLinesFromFile reads claims or URLs from a file (one per line)
func ReadLinesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return lines, nil
}

func isURL(line string) bool {
	return strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://")
}
