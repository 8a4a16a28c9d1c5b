// Package report renders the compliance report artifacts and maps the final
// publish outcome onto the build record.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	gerrors "git.home.luguber.info/inful/ossgate/internal/errors"
	"git.home.luguber.info/inful/ossgate/internal/service"
)

// Artifact is a generated compliance report on disk.
type Artifact struct {
	MarkdownPath string
	HTMLPath     string
}

// Renderer produces the compliance report for a completed policy check.
type Renderer interface {
	Generate(verdict service.ComplianceVerdict, buildName string, buildNumber int, outputDir string) (Artifact, error)
}

// GoldmarkRenderer writes a Markdown report of the verdict and an HTML
// rendering of it next to each other in the build's report directory.
type GoldmarkRenderer struct{}

const (
	reportBaseName = "policy-report"
	htmlHeader     = "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Policy Check Report</title></head><body>\n"
	htmlFooter     = "</body></html>\n"
)

// Generate implements Renderer.
func (GoldmarkRenderer) Generate(verdict service.ComplianceVerdict, buildName string, buildNumber int, outputDir string) (Artifact, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Artifact{}, gerrors.ReportFailed(err)
	}

	md := renderMarkdown(verdict, buildName, buildNumber)
	mdPath := filepath.Join(outputDir, reportBaseName+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return Artifact{}, gerrors.ReportFailed(err)
	}

	var html bytes.Buffer
	html.WriteString(htmlHeader)
	converter := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := converter.Convert([]byte(md), &html); err != nil {
		return Artifact{}, gerrors.ReportFailed(err)
	}
	html.WriteString(htmlFooter)

	htmlPath := filepath.Join(outputDir, reportBaseName+".html")
	if err := os.WriteFile(htmlPath, html.Bytes(), 0o644); err != nil {
		return Artifact{}, gerrors.ReportFailed(err)
	}

	return Artifact{MarkdownPath: mdPath, HTMLPath: htmlPath}, nil
}

func renderMarkdown(verdict service.ComplianceVerdict, buildName string, buildNumber int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Policy Check Report\n\n")
	fmt.Fprintf(&b, "Build: %s #%d\n\n", buildName, buildNumber)

	if !verdict.HasRejections() {
		b.WriteString("All dependencies conform with open source policies.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d dependencies were rejected by organization policies.\n\n", len(verdict.Rejections))
	b.WriteString("| Project | Library | Policy | Reason |\n")
	b.WriteString("|---------|---------|--------|--------|\n")
	for _, r := range verdict.Rejections {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Project, r.Library, r.Policy, r.Reason)
	}
	return b.String()
}
