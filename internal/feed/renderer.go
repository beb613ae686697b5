// Package feed renders published articles as an RSS 2.0 document.
package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"newshub/internal/domain"
)

// MaxItems is the number of articles the feed endpoints render.
const MaxItems = 50

const (
	atomNS    = "http://www.w3.org/2005/Atom"
	contentNS = "http://purl.org/rss/1.0/modules/content/"
	mediaNS   = "http://search.yahoo.com/mrss/"

	// ContentType is served with every feed response.
	ContentType = "application/rss+xml; charset=utf-8"

	imageStyle = "max-width: 100%; height: auto; margin-bottom: 10px; object-fit: cover;"
)

// ImageSize is a width/height pair for inline item images.
type ImageSize struct {
	Width  int
	Height int
}

// imagePresets cycle by item position. Purely cosmetic.
var imagePresets = [...]ImageSize{
	{600, 400},
	{500, 300},
	{700, 350},
	{550, 450},
	{650, 300},
}

// PresetFor returns the inline image size used for the item at index.
func PresetFor(index int) ImageSize {
	return imagePresets[index%len(imagePresets)]
}

// Channel holds the feed-level metadata.
type Channel struct {
	Title          string
	Description    string
	Link           string
	Language       string
	Copyright      string
	ManagingEditor string
	WebMaster      string
	ImageURL       string
	ImageTitle     string
	ImageWidth     int
	ImageHeight    int
	SelfLink       string
	TTL            int
}

// DefaultChannel returns the NewsHub channel rooted at baseURL.
func DefaultChannel(baseURL string, year int) Channel {
	baseURL = strings.TrimRight(baseURL, "/")
	return Channel{
		Title:          "NewsHub - Tin tức và Bài viết",
		Description:    "Cập nhật tin tức mới nhất về công nghệ, kinh doanh, thể thao và nhiều lĩnh vực khác.",
		Link:           baseURL,
		Language:       "vi",
		Copyright:      fmt.Sprintf("Copyright NewsHub %d", year),
		ManagingEditor: "admin@newshub.com (NewsHub Editorial)",
		WebMaster:      "admin@newshub.com (NewsHub Technical)",
		ImageURL:       baseURL + "/logo.png",
		ImageTitle:     "NewsHub",
		ImageWidth:     144,
		ImageHeight:    144,
		SelfLink:       baseURL + "/api/rss.xml",
		TTL:            60,
	}
}

// ArticleLink is the public URL of an article.
func (c Channel) ArticleLink(id string) string {
	return c.Link + "/articles/" + id
}

type cdata struct {
	Text string `xml:",cdata"`
}

type rssDocument struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	AtomNS    string     `xml:"xmlns:atom,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	MediaNS   string     `xml:"xmlns:media,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string    `xml:"title"`
	Description    string    `xml:"description"`
	Link           string    `xml:"link"`
	Language       string    `xml:"language,omitempty"`
	Copyright      string    `xml:"copyright,omitempty"`
	ManagingEditor string    `xml:"managingEditor,omitempty"`
	WebMaster      string    `xml:"webMaster,omitempty"`
	LastBuildDate  string    `xml:"lastBuildDate"`
	PubDate        string    `xml:"pubDate"`
	TTL            int       `xml:"ttl,omitempty"`
	Image          *rssImage `xml:"image"`
	AtomLink       atomLink  `xml:"atom:link"`
	Items          []rssItem `xml:"item"`
}

type rssImage struct {
	URL    string `xml:"url"`
	Title  string `xml:"title"`
	Link   string `xml:"link"`
	Width  int    `xml:"width,omitempty"`
	Height int    `xml:"height,omitempty"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr"`
}

type rssItem struct {
	Title       cdata         `xml:"title"`
	Description cdata         `xml:"description"`
	Link        string        `xml:"link"`
	GUID        rssGUID       `xml:"guid"`
	PubDate     string        `xml:"pubDate"`
	Author      string        `xml:"author,omitempty"`
	Category    string        `xml:"category,omitempty"`
	Enclosure   *rssEnclosure `xml:"enclosure"`
}

// Render produces the RSS document for articles in the given order.
// It never filters or sorts; now stamps lastBuildDate and pubDate, so identical
// inputs give identical bytes.
func Render(articles []domain.Article, ch Channel, now time.Time) ([]byte, error) {
	stamp := formatDate(now)

	doc := rssDocument{
		Version:   "2.0",
		AtomNS:    atomNS,
		ContentNS: contentNS,
		MediaNS:   mediaNS,
		Channel: rssChannel{
			Title:          clean(ch.Title),
			Description:    clean(ch.Description),
			Link:           ch.Link,
			Language:       ch.Language,
			Copyright:      clean(ch.Copyright),
			ManagingEditor: clean(ch.ManagingEditor),
			WebMaster:      clean(ch.WebMaster),
			LastBuildDate:  stamp,
			PubDate:        stamp,
			TTL:            ch.TTL,
			AtomLink: atomLink{
				Href: ch.SelfLink,
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: make([]rssItem, 0, len(articles)),
		},
	}
	if ch.ImageURL != "" {
		doc.Channel.Image = &rssImage{
			URL:    ch.ImageURL,
			Title:  clean(ch.ImageTitle),
			Link:   ch.Link,
			Width:  ch.ImageWidth,
			Height: ch.ImageHeight,
		}
	}

	for i, a := range articles {
		doc.Channel.Items = append(doc.Channel.Items, renderItem(i, a, ch))
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func renderItem(index int, a domain.Article, ch Channel) rssItem {
	link := ch.ArticleLink(a.ID)
	item := rssItem{
		Title:       cdata{Text: clean(a.Title)},
		Description: cdata{Text: clean(a.Excerpt)},
		Link:        link,
		GUID:        rssGUID{IsPermaLink: true, Value: link},
		PubDate:     formatDate(a.PublishDate),
		Author:      clean(a.Author),
		Category:    clean(a.Category),
	}

	if a.HasImage() {
		size := PresetFor(index)
		src := clean(*a.ImageURL)
		item.Description.Text = fmt.Sprintf(`<img src="%s" width="%d" height="%d" style="%s" /><br/>%s`,
			html.EscapeString(src), size.Width, size.Height, imageStyle, item.Description.Text)
		item.Enclosure = &rssEnclosure{URL: src, Type: "image/jpeg"}
	}
	return item
}

func formatDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// clean drops characters that XML 1.0 cannot carry.
// clean normalises line endings to LF and drops characters XML cannot carry.
func clean(s string) string {
	if strings.IndexByte(s, '\r') >= 0 {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	}
	if isXMLSafe(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || !isXMLChar(r) {
			return -1
		}
		return r
	}, s)
}

func isXMLSafe(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
