// Package showcase is the demo application served and rendered by the
// declarative command. It exercises every control-flow construct and two
// portals against four signals: loggedIn, admin, banner and fruit.
package showcase

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/declarative/pkg/flow"
	"github.com/vango-dev/declarative/pkg/portal"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/server"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// Slot names a portal target in the page layout.
type Slot string

const (
	// SlotToolbar renders in the header, before the content publishing it.
	SlotToolbar Slot = "toolbar"
	// SlotFooter renders in the footer, after the content publishing it.
	SlotFooter Slot = "footer"
)

// Observer receives both branch and portal events; metrics.Collector is
// one.
type Observer interface {
	flow.Observer
	portal.Observer
}

// Option configures the showcase.
type Option func(*Showcase)

// WithObserver reports every construct and portal to obs.
func WithObserver(obs Observer) Option {
	return func(s *Showcase) { s.observer = obs }
}

// WithLogger sets the logger handed to constructs and the portal registry.
func WithLogger(l *slog.Logger) Option {
	return func(s *Showcase) { s.logger = l }
}

// Showcase builds the demo tree. It implements server.App.
type Showcase struct {
	observer Observer
	logger   *slog.Logger
}

// New returns the demo application.
func New(opts ...Option) *Showcase {
	s := &Showcase{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Showcase) flowOptions(name string) []flow.Option {
	opts := []flow.Option{flow.WithName(name), flow.WithLogger(s.logger)}
	if s.observer != nil {
		opts = append(opts, flow.WithObserver(s.observer))
	}
	return opts
}

func (s *Showcase) portalOptions() []portal.Option {
	opts := []portal.Option{portal.WithLogger(s.logger)}
	if s.observer != nil {
		opts = append(opts, portal.WithObserver(s.observer))
	}
	return opts
}

// Build implements server.App.
func (s *Showcase) Build(owner *reactive.Owner) (vdom.Component, []server.Binding) {
	loggedIn := reactive.NewSignal(false)
	admin := reactive.NewSignal(false)
	banner := reactive.NewSignal(true)
	fruit := reactive.NewSignal("apple")

	portal.Provide[Slot](owner, s.portalOptions()...)

	isAdmin := reactive.ReaderFunc[bool](func() bool {
		return loggedIn.Get() && admin.Get()
	})

	account := must(flow.NewIf(isAdmin, []flow.Block{
		flow.Then(func() *vdom.VNode {
			return vdom.Div(vdom.Class("admin"),
				vdom.H2("Administration"),
				vdom.P("You can manage every account."),
				portal.NewInput(SlotToolbar, vdom.Button(vdom.Type("button"), "Manage users")),
			)
		}),
		flow.ElseIf(loggedIn, func() *vdom.VNode {
			return vdom.Div(vdom.Class("member"),
				vdom.H2("Welcome back"),
				portal.NewInput(SlotToolbar, vdom.Button(vdom.Type("button"), "Profile")),
			)
		}),
		flow.Else(func() *vdom.VNode {
			return vdom.Div(vdom.Class("guest"), vdom.P("Please sign in."))
		}),
	}, s.flowOptions("account")...))

	notice := flow.Show(banner,
		flow.Content(vdom.P(vdom.Class("banner"), "Declarative control flow is live.")),
		nil,
		s.flowOptions("banner")...,
	)

	fruitNote := portal.NewInput(SlotFooter, vdom.Func(func() *vdom.VNode {
		return vdom.Span(vdom.Textf("Fruit of the day: %s", fruit.Get()))
	}))

	pick := must(flow.NewWhen[string](fruit, []flow.Case[string]{
		flow.Equals("apple", flow.Content(vdom.P("Show this for apples."))),
		flow.Equals("oranges", flow.Content(vdom.P("Show that for oranges."))),
		flow.Is(func(f string) bool { return strings.HasSuffix(f, "berry") },
			flow.Content(vdom.P("A berry of some kind."))),
		flow.Otherwise[string](flow.Content(vdom.P(vdom.Func(func() *vdom.VNode {
			return vdom.Textf("No idea what %q is.", fruit.Get())
		})))),
	}, s.flowOptions("fruit")...))

	root := vdom.Func(func() *vdom.VNode {
		return vdom.Div(vdom.Class("showcase"),
			vdom.Header(
				vdom.H1("Declarative showcase"),
				vdom.Nav(portal.NewOutput(SlotToolbar)),
			),
			notice,
			vdom.Main(
				vdom.Section(vdom.ID("account"), account),
				vdom.Section(vdom.ID("fruit"), pick, fruitNote),
			),
			vdom.Footer(portal.NewOutput(SlotFooter)),
		)
	})

	return root, []server.Binding{
		server.Bool("loggedIn", loggedIn),
		server.Bool("admin", admin),
		server.Bool("banner", banner),
		server.String("fruit", fruit),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var _ server.App = (*Showcase)(nil)
