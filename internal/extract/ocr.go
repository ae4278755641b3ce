package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/otiai10/gosseract/v2"
)

// gosseractBackend is the higher-level OCR integration, driving the
// Tesseract engine in-process through gosseract. It requires the Tesseract
// native library; when the engine fails at runtime the dispatcher falls back
// to the tesseract binary.
type gosseractBackend struct{}

func (gosseractBackend) Method() Method { return MethodOCRText }

func (gosseractBackend) Available() bool { return true }

func (b gosseractBackend) Extract(ctx context.Context, page Page, req Request) ([]Table, error) {
	images, err := pageImages(page, req.WorkDir)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if lang := req.Params.String(ParamLanguage, "eng"); lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return nil, &MethodError{Method: MethodOCRText, Op: "set_language", Err: err}
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(req.Params.Int(ParamPageSegMode, 6))); err != nil {
		return nil, &MethodError{Method: MethodOCRText, Op: "set_psm", Err: err}
	}

	var table Table
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := client.SetImage(img); err != nil {
			return nil, &MethodError{Method: MethodOCRText, Op: "set_image", Err: err}
		}
		text, err := client.Text()
		if err != nil {
			return nil, &MethodError{Method: MethodOCRText, Op: "recognize", Err: err}
		}
		table = append(table, linesToTable(text)...)
	}
	return wholePageTables(table, req), nil
}

// tesseractBackend is the direct OCR fallback: the tesseract binary invoked
// per page image.
type tesseractBackend struct{}

func (tesseractBackend) Method() Method { return MethodOCRText }

func (tesseractBackend) Available() bool {
	_, err := exec.LookPath("tesseract")
	return err == nil
}

func (b tesseractBackend) Extract(ctx context.Context, page Page, req Request) ([]Table, error) {
	images, err := pageImages(page, req.WorkDir)
	if err != nil {
		return nil, err
	}

	lang := req.Params.String(ParamLanguage, "eng")
	psm := strconv.Itoa(req.Params.Int(ParamPageSegMode, 6))

	var table Table
	for _, img := range images {
		cmd := exec.CommandContext(ctx, "tesseract", img, "stdout", "-l", lang, "--psm", psm)
		out, err := cmd.Output()
		if err != nil {
			return nil, &MethodError{Method: MethodOCRText, Op: "tesseract", Err: err}
		}
		table = append(table, linesToTable(string(out))...)
	}
	return wholePageTables(table, req), nil
}

// pageImages materializes the page's images into a per-page subdirectory of
// the working area.
func pageImages(page Page, workDir string) ([]string, error) {
	if workDir == "" {
		return nil, &MethodError{Method: MethodOCRText, Op: "page_images", Err: fmt.Errorf("no working area")}
	}
	dir := filepath.Join(workDir, "ocr", fmt.Sprintf("page%d", page.Number()))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, &MethodError{Method: MethodOCRText, Op: "page_images", Err: err}
	}

	images, err := page.Images(dir)
	if err != nil {
		return nil, &MethodError{Method: MethodOCRText, Op: "page_images", Err: err}
	}
	if len(images) == 0 {
		return nil, &MethodError{
			Method: MethodOCRText,
			Op:     "page_images",
			Err:    fmt.Errorf("page %d has no images to recognize", page.Number()),
		}
	}
	return images, nil
}

// wholePageTables places whole-page recognizer output into the first
// requested rectangle, mirroring the plain-text fallback: OCR output carries
// no positions to clip against the request rectangles.
func wholePageTables(table Table, req Request) []Table {
	tables := make([]Table, len(req.Rects))
	if len(tables) > 0 {
		tables[0] = table
	}
	return tables
}
