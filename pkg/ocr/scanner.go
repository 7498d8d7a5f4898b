package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"bitescan-api/domain"
	"bitescan-api/internal/config"
)

type (
	// Scanner is the OCR collaborator: it accepts an image and returns the
	// structured receipt document, or fails with a distinguishable
	// execution, timeout or format error.
	Scanner interface {
		Scan(ctx context.Context, image []byte) (domain.RawReceiptDocument, error)
	}

	cliScanner struct {
		binary  string
		timeout time.Duration
	}
)

// NewCLIScanner wraps the external receipt-ocr command line tool. The tool
// takes an image path and prints the receipt document as JSON on stdout.
func NewCLIScanner(cfg *config.Config) Scanner {
	return &cliScanner{
		binary:  cfg.OcrBinary,
		timeout: cfg.OcrTimeout,
	}
}

func (s *cliScanner) Scan(ctx context.Context, image []byte) (domain.RawReceiptDocument, error) {
	if len(image) == 0 {
		return domain.RawReceiptDocument{}, domain.ErrNoImage
	}

	tmp, err := os.CreateTemp("", "receipt-*.png")
	if err != nil {
		return domain.RawReceiptDocument{}, fmt.Errorf("%w: %v", domain.ErrOcrExecution, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return domain.RawReceiptDocument{}, fmt.Errorf("%w: %v", domain.ErrOcrExecution, err)
	}
	if err := tmp.Close(); err != nil {
		return domain.RawReceiptDocument{}, fmt.Errorf("%w: %v", domain.ErrOcrExecution, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.binary, tmp.Name())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return domain.RawReceiptDocument{}, domain.ErrOcrTimeout
		case errors.Is(ctx.Err(), context.Canceled):
			return domain.RawReceiptDocument{}, ctx.Err()
		}
		return domain.RawReceiptDocument{}, fmt.Errorf("%w: %s", domain.ErrOcrExecution, stderr.String())
	}

	return ParseDocument(bytes.TrimSpace(stdout.Bytes()))
}
