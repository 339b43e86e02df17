package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// defaultRequestTimeout bounds one remote call issued by the controller.
const defaultRequestTimeout = 10 * time.Second

type options struct {
	logger         Logger
	document       *Document
	requestTimeout time.Duration
	copyText       func(string) error
	markdownStyle  string
	showItemCounts bool
	keys           KeyConfig
}

// Option customizes the shell and the lists controller.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:         discardLogger{},
		document:       NewDocument(),
		requestTimeout: defaultRequestTimeout,
		copyText:       clipboard.WriteAll,
		markdownStyle:  "dark",
		showItemCounts: true,
	}
}

func applyOptions(opts []Option) options {
	out := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}

func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDocument shares a host document; the controller holds ModalOpenClass on it while active.
func WithDocument(doc *Document) Option {
	return func(o *options) {
		if doc != nil {
			o.document = doc
		}
	}
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.requestTimeout = timeout
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(copyText func(string) error) Option {
	return func(o *options) {
		if copyText != nil {
			o.copyText = copyText
		}
	}
}

func WithMarkdownStyle(style string) Option {
	return func(o *options) {
		if style = strings.TrimSpace(style); style != "" {
			o.markdownStyle = style
		}
	}
}

func WithItemCounts(show bool) Option {
	return func(o *options) {
		o.showItemCounts = show
	}
}

// WithKeyConfig overrides controller key bindings.
func WithKeyConfig(cfg KeyConfig) Option {
	return func(o *options) {
		o.keys = cfg
	}
}
