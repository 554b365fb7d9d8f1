// Package sitemap builds the sitemaps.org XML document for the site.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/trivora/trivora/internal/models"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Static pages listed alongside the posts.
var staticPaths = []string{"/", "/contact", "/privacy-policy"}

type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Build assembles one entry per static page (dated now) and one per
// post (dated by its creation time).
func Build(baseURL string, now time.Time, posts []models.Post) URLSet {
	base := strings.TrimRight(baseURL, "/")

	set := URLSet{Xmlns: xmlns}
	for _, p := range staticPaths {
		set.URLs = append(set.URLs, URL{Loc: base + p, LastMod: now.Format("2006-01-02")})
	}
	for _, post := range posts {
		set.URLs = append(set.URLs, URL{
			Loc:     fmt.Sprintf("%s/post/%d", base, post.ID),
			LastMod: post.CreatedAt.Format("2006-01-02"),
		})
	}
	return set
}

// Encode writes the XML declaration and the indented document.
func (s URLSet) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
