package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"railshift/repository"
)

// GenerateManifestPDF renders the wagon manifest of a USN shift through
// headless Chrome. It returns nil bytes when the shift does not exist.
func GenerateManifestPDF(ctx context.Context, repo *repository.PDFRepository, shiftID int64) ([]byte, error) {
	shift, err := repo.GetShiftForPDF(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, nil
	}

	wagons, err := repo.GetWagonsForPDF(ctx, shift.WagonIDs())
	if err != nil {
		return nil, err
	}
	loco, err := repo.GetLocomotiveForPDF(ctx, shift.LocomotiveID)
	if err != nil {
		return nil, err
	}

	html, err := RenderManifestHTML(BuildManifest(shift, wagons, loco, time.Now()))
	if err != nil {
		return nil, err
	}
	return PrintHTMLToPDF(ctx, html)
}

// PrintHTMLToPDF loads html in headless Chrome and prints it as A4 landscape.
func PrintHTMLToPDF(ctx context.Context, html []byte) ([]byte, error) {
	tmpHTML, err := writeTempHTML(html)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	cctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(cctx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

// writeTempHTML stores html in a uniquely named temp file Chrome can open.
func writeTempHTML(html []byte) (string, error) {
	f, err := os.CreateTemp("", "manifest_*.html")
	if err != nil {
		return "", fmt.Errorf("utils: create manifest html: %w", err)
	}
	if _, err := f.Write(html); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("utils: write manifest html: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("utils: write manifest html: %w", err)
	}
	return f.Name(), nil
}
