package exchange

type Option func(*Options)

type Options struct {
	// MaxPages bounds a paginated walk; zero means unbounded.
	MaxPages int
}

// WithMaxPages stops a paginated walk after n pages. n <= 0 removes the bound.
func WithMaxPages(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxPages = n
	}
}

func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
