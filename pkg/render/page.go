package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/declarative/pkg/vdom"
)

// PageOptions describes a full HTML document around a body tree.
type PageOptions struct {
	Title string

	// LiveURL, when set, adds a script that connects to this websocket path
	// and replaces the body content with each message received.
	LiveURL string
}

const liveScript = `(function(){
var root=document.getElementById("app");
var proto=location.protocol==="https:"?"wss://":"ws://";
var ws=new WebSocket(proto+location.host+%q);
ws.onmessage=function(ev){root.innerHTML=ev.data;};
})();`

// Page wraps body in a complete document. The body is placed inside
// <div id="app">.
func Page(opts PageOptions, body *vdom.VNode) *vdom.VNode {
	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Title(opts.Title),
	)
	var script *vdom.VNode
	if opts.LiveURL != "" {
		script = vdom.Script(vdom.Raw(fmt.Sprintf(liveScript, opts.LiveURL)))
	}
	return vdom.Fragment(
		vdom.Raw("<!DOCTYPE html>\n"),
		vdom.Html(
			head,
			vdom.Body(vdom.Div(vdom.ID("app"), body), script),
		),
	)
}

// RenderPage renders a full document to w.
func (r *Renderer) RenderPage(w io.Writer, opts PageOptions, body *vdom.VNode) error {
	return r.RenderToWriter(w, Page(opts, body))
}
