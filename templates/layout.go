package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const layoutScript = `
function applyIndeterminate(root){root.querySelectorAll('[data-indeterminate]').forEach(function(el){el.indeterminate=true})}
function showToast(t){var box=document.getElementById('toasts');var d=document.createElement('div');d.className='toast toast-'+t.type;d.textContent=t.message;box.appendChild(d);setTimeout(function(){d.remove()},4000)}
document.body.addEventListener('showToast',function(e){showToast(e.detail)});
document.body.addEventListener('gridRowOpened',function(e){showToast({type:'info',message:'Opened '+e.detail.key})});
document.body.addEventListener('htmx:load',function(e){applyIndeterminate(e.detail.elt)});
applyIndeterminate(document);
var flash=document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
if(flash){document.cookie='flash_toast=; Max-Age=0; path=/';try{showToast(JSON.parse(decodeURIComponent(flash[1].replace(/\+/g,' '))))}catch(_){}}
`

// Layout wraps body in the full HTML page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(`</title><style>`, styles, `</style>`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script></head><body>`)
		h.raw(`<nav><a href="/grids">Grids</a></nav><main>`)
		h.render(ctx, body)
		h.raw(`</main><div id="toasts" aria-live="polite"></div><script>`, layoutScript, `</script></body></html>`)
		return h.err
	})
}
