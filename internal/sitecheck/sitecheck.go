// Package sitecheck audits a portfolio page against the markup the
// behaviour layer looks for, so that a silently disabled feature or a
// half-translated element shows up before the page is published.
package sitecheck

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/cdelgado/portfolio/internal/config"
)

// Severity ranks a finding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Finding is a single problem in the page.
type Finding struct {
	Severity Severity
	Rule     string
	Message  string
}

// Feature reports whether the markup a controller needs is present.
type Feature struct {
	Name     string
	Selector string
	Matches  int
}

// Enabled reports whether the feature will start on this page.
func (f Feature) Enabled() bool { return f.Matches > 0 }

// Report is the outcome of checking one page.
type Report struct {
	Path     string
	Features []Feature
	Findings []Finding
}

// HasErrors reports whether any finding is error level.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of findings at severity s.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

func (r *Report) add(sev Severity, rule, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{
		Severity: sev,
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
	})
}

// probe ties a page feature to the selector its controller starts from.
type probe struct {
	name     string
	selector string
}

var baseProbes = []probe{
	{"theme", ".theme-toggle"},
	{"language", ".lang-toggle"},
	{"navigation", "#navbar"},
	{"smooth-scroll", `a[href^="#"]`},
	{"contact", "#contactForm"},
	{"scroll-indicator", ".scroll-indicator"},
	{"lazy-images", `img[loading="lazy"]`},
	{"accessibility", `[role="button"]:not(button)`},
	{"analytics", `a[target="_blank"], a[download]`},
}

// Checker holds the compiled selectors for one configuration.
type Checker struct {
	cfg    *config.Config
	probes []probe
}

// New returns a checker for the page features configured in cfg.
func New(cfg *config.Config) (*Checker, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	probes := append([]probe(nil), baseProbes...)

	reveal := []string{cfg.Reveal.Timeline.Selector}
	for _, g := range cfg.Reveal.Groups {
		reveal = append(reveal, g.Selector)
	}
	probes = append(probes, probe{"reveal", strings.Join(nonEmpty(reveal), ", ")})

	for _, p := range probes {
		if _, err := cascadia.Compile(p.selector); err != nil {
			return nil, fmt.Errorf("feature %s: invalid selector %q: %w", p.name, p.selector, err)
		}
	}
	return &Checker{cfg: cfg, probes: probes}, nil
}

// CheckFile parses and checks the page at path.
func (c *Checker) CheckFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	report, err := c.Check(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	report.Path = path
	return report, nil
}

// Check parses and checks a page.
func (c *Checker) Check(r io.Reader) (*Report, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	report := &Report{}
	for _, p := range c.probes {
		report.Features = append(report.Features, Feature{
			Name:     p.name,
			Selector: p.selector,
			Matches:  len(cascadia.MustCompile(p.selector).MatchAll(doc)),
		})
	}

	checkTranslations(doc, report)
	checkAnchors(doc, report)
	checkSections(doc, report)
	checkContactForm(doc, report)
	return report, nil
}

func checkTranslations(doc *html.Node, report *Report) {
	for _, el := range cascadia.MustCompile("[data-en], [data-es]").MatchAll(doc) {
		en, hasEN := attr(el, "data-en")
		es, hasES := attr(el, "data-es")
		switch {
		case !hasEN:
			report.add(SeverityError, "translation", "%s has data-es but no data-en", describe(el))
		case !hasES:
			report.add(SeverityError, "translation", "%s has data-en but no data-es", describe(el))
		case strings.TrimSpace(en) == "" || strings.TrimSpace(es) == "":
			report.add(SeverityWarning, "translation", "%s has an empty translation", describe(el))
		}
	}
}

func checkAnchors(doc *html.Node, report *Report) {
	ids := elementIDs(doc)
	seen := make(map[string]bool)
	for _, a := range cascadia.MustCompile(`a[href^="#"]`).MatchAll(doc) {
		href, _ := attr(a, "href")
		id := strings.TrimPrefix(href, "#")
		if id == "" || ids[id] || seen[id] {
			continue
		}
		seen[id] = true
		report.add(SeverityError, "anchor", "link to %s has no target", href)
	}
}

func checkSections(doc *html.Node, report *Report) {
	linked := make(map[string]bool)
	for _, a := range cascadia.MustCompile(".nav-link").MatchAll(doc) {
		if href, ok := attr(a, "href"); ok && strings.HasPrefix(href, "#") {
			linked[strings.TrimPrefix(href, "#")] = true
		}
	}
	if len(linked) == 0 {
		return
	}

	var missing []string
	for _, section := range cascadia.MustCompile("section[id]").MatchAll(doc) {
		id, _ := attr(section, "id")
		if !linked[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	for _, id := range missing {
		report.add(SeverityWarning, "navigation", "section #%s has no nav link and is never highlighted", id)
	}
}

func checkContactForm(doc *html.Node, report *Report) {
	form := cascadia.MustCompile("#contactForm").MatchFirst(doc)
	if form == nil {
		return
	}
	for _, name := range []string{"name", "email", "message"} {
		if cascadia.MustCompile(`[name="`+name+`"]`).MatchFirst(form) == nil {
			report.add(SeverityError, "contact", "contact form has no %q field", name)
		}
	}
	if cascadia.MustCompile(`button[type="submit"]`).MatchFirst(form) == nil {
		report.add(SeverityWarning, "contact", "contact form has no submit button")
	}
	if cascadia.MustCompile("#formStatus").MatchFirst(doc) == nil {
		report.add(SeverityWarning, "contact", "no #formStatus element, results will not be shown")
	}
}

func elementIDs(doc *html.Node) map[string]bool {
	ids := make(map[string]bool)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id, ok := attr(n, "id"); ok && id != "" {
				ids[id] = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return ids
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// describe names an element the way a selector would.
func describe(n *html.Node) string {
	var b strings.Builder
	b.WriteString(n.Data)
	if id, ok := attr(n, "id"); ok && id != "" {
		b.WriteString("#" + id)
	}
	if class, ok := attr(n, "class"); ok {
		for _, c := range strings.Fields(class) {
			b.WriteString("." + c)
		}
	}
	return b.String()
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
