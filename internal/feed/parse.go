package feed

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed/rss"
	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// Channel holds the fields taken from a feed's <channel> element.
type Channel struct {
	Title       string
	Description string
}

// Parse reads an RSS document and returns its channel title and description.
// Both are required.
func Parse(data []byte) (Channel, error) {
	root, err := rootElement(data)
	if err != nil {
		return Channel{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if !strings.EqualFold(root, "rss") {
		return Channel{}, fmt.Errorf("%w: root element is %q, not rss", ErrParse, root)
	}

	p := rss.Parser{}
	f, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return Channel{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if f.Title == "" {
		return Channel{}, fmt.Errorf("%w: channel has no title", ErrParse)
	}
	if f.Description == "" {
		return Channel{}, fmt.Errorf("%w: channel has no description", ErrParse)
	}
	return Channel{Title: f.Title, Description: f.Description}, nil
}

// rootElement returns the local name of the document's first element.
// gofeed's rss parser also takes RSS 1.0 (<rdf:RDF>) documents, which are not subscribable feeds here.
func rootElement(data []byte) (string, error) {
	p := xpp.NewXMLPullParser(bytes.NewReader(data), false, charset.NewReaderLabel)
	for {
		ev, err := p.Next()
		if err != nil {
			return "", err
		}
		switch ev {
		case xpp.StartTag:
			return p.Name, nil
		case xpp.EndDocument:
			return "", errors.New("document has no root element")
		}
	}
}
