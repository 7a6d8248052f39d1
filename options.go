package vectorvault

// options holds New's resolved configuration after every Option has run.
type options struct {
	m              int
	efConstruction int
	maxM           int
	maxM0          int
	seed           int64
	metric         Metric
	logger         *Logger
}

// Option configures a new Index, mirroring the teacher's own Option/With*
// pattern for its top-level constructor.
type Option func(*options)

// WithM sets the number of established connections per node during
// construction.
func WithM(m int) Option {
	return func(o *options) { o.m = m }
}

// WithEfConstruction sets the dynamic candidate list size used while
// inserting.
func WithEfConstruction(ef int) Option {
	return func(o *options) { o.efConstruction = ef }
}

// WithMaxM caps the neighbor list size at layers above 0. Zero means derive
// it from M.
func WithMaxM(maxM int) Option {
	return func(o *options) { o.maxM = maxM }
}

// WithMaxM0 caps the neighbor list size at layer 0. Zero means derive it
// from M.
func WithMaxM0(maxM0 int) Option {
	return func(o *options) { o.maxM0 = maxM0 }
}

// WithSeed fixes the RNG seed used for level sampling. Zero means derive a
// seed from the current time.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithMetric selects the distance metric.
func WithMetric(metric Metric) Option {
	return func(o *options) { o.metric = metric }
}

// WithLogger attaches a structured logger. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) { o.logger = logger }
}

func applyOptions(optFns []Option) options {
	o := options{
		m:              16,
		efConstruction: 200,
		metric:         L2,
		logger:         NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
