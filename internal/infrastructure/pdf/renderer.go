package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/printshop/backend/internal/application/report"
	"github.com/printshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ report.PDFRenderer = (*ChromedpRenderer)(nil)

const (
	defaultRenderTimeout = 30 * time.Second

	// A4 portrait, inches
	paperWidth  = 8.27
	paperHeight = 11.69
	pageMargin  = 0.4
)

// ChromedpRenderer renders the report templates to PDF through the
// Chrome DevTools print-to-PDF endpoint.
type ChromedpRenderer struct {
	engine      *TemplateEngine
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer starts a headless browser allocator using the
// configured Chrome binary (or chromedp's own lookup when unset)
func NewChromedpRenderer(cfg config.PDFConfig, logger *zap.Logger) (*ChromedpRenderer, error) {
	engine, err := NewTemplateEngine()
	if err != nil {
		return nil, err
	}

	timeout := cfg.RenderTimeout
	if timeout <= 0 {
		timeout = defaultRenderTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpRenderer{
		engine:      engine,
		timeout:     timeout,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}, nil
}

// Render executes the named template and prints the result as an A4
// portrait PDF
func (r *ChromedpRenderer) Render(ctx context.Context, template string, data any) ([]byte, error) {
	html, err := r.engine.Render(template, data)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	start := time.Now()
	var pdfData []byte

	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(pageMargin).
				WithMarginRight(pageMargin).
				WithMarginBottom(pageMargin).
				WithMarginLeft(pageMargin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.timeout, err)
		}
		r.logger.Error("chromedp rendering failed",
			zap.String("template", template),
			zap.Error(err))
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("generated pdf is empty")
	}

	r.logger.Info("PDF rendered",
		zap.String("template", template),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(start)))

	return pdfData, nil
}

// Close stops the browser allocator
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}
