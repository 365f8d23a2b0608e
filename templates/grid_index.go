package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// GridIndexContent lists the configured grids.
func GridIndexContent(data GridIndexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="grid-index"><h1>Grids</h1>`)
		if len(data.Grids) == 0 {
			h.raw(`<p>No grids configured</p></section>`)
			return h.err
		}
		h.raw(`<ul>`)
		for _, g := range data.Grids {
			h.raw(`<li><a`)
			h.attr("href", string(templ.URL("/grids/"+g.Name)))
			h.raw(`>`)
			h.text(g.Title)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></section>`)
		return h.err
	})
}

// GridIndexPage is GridIndexContent inside the page layout.
func GridIndexPage(data GridIndexData) templ.Component {
	return Layout("Grids", GridIndexContent(data))
}
