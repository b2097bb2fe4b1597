package logconf

// Config is the root of the logging configuration mapping. Field names and
// nesting follow the dictConfig schema, so a serialized Config can be handed
// to the host verbatim.
type Config struct {
	Version                int                   `json:"version" yaml:"version"`
	DisableExistingLoggers bool                  `json:"disable_existing_loggers" yaml:"disable_existing_loggers"`
	Formatters             map[string]*Formatter `json:"formatters,omitempty" yaml:"formatters,omitempty"`
	Filters                map[string]*Filter    `json:"filters,omitempty" yaml:"filters,omitempty"`
	Handlers               map[string]*Handler   `json:"handlers,omitempty" yaml:"handlers,omitempty"`
	Loggers                map[string]*Logger    `json:"loggers,omitempty" yaml:"loggers,omitempty"`
	Root                   *Logger               `json:"root,omitempty" yaml:"root,omitempty"`
}

// Handler describes a single logging sink: which host-side class implements
// it, how records are formatted, and where they are delivered. Only the
// fields relevant to a given handler class are populated; the rest are
// omitted from the serialized document.
type Handler struct {
	Class              string   `json:"class" yaml:"class"`
	Formatter          string   `json:"formatter,omitempty" yaml:"formatter,omitempty"`
	Filters            []string `json:"filters,omitempty" yaml:"filters,omitempty"`
	Stream             string   `json:"stream,omitempty" yaml:"stream,omitempty"`
	BaseLogFolder      string   `json:"base_log_folder,omitempty" yaml:"base_log_folder,omitempty"`
	FilenameTemplate   string   `json:"filename_template,omitempty" yaml:"filename_template,omitempty"`
	LogGroupARN        string   `json:"log_group_arn,omitempty" yaml:"log_group_arn,omitempty"`
	StreamName         string   `json:"stream_name,omitempty" yaml:"stream_name,omitempty"`
	StreamNameTemplate string   `json:"stream_name_template,omitempty" yaml:"stream_name_template,omitempty"`
	StreamNamePrefix   string   `json:"stream_name_prefix,omitempty" yaml:"stream_name_prefix,omitempty"`
	SubprocessName     string   `json:"subprocess_name,omitempty" yaml:"subprocess_name,omitempty"`
	Enabled            *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// Logger is a named log channel: the handlers attached to it, its minimum
// severity, and whether records propagate to ancestor loggers. Propagate is a
// pointer because the contract distinguishes an explicit false from an absent
// value (absent leaves the host default in place).
type Logger struct {
	Handlers  []string `json:"handlers,omitempty" yaml:"handlers,omitempty"`
	Level     string   `json:"level,omitempty" yaml:"level,omitempty"`
	Propagate *bool    `json:"propagate,omitempty" yaml:"propagate,omitempty"`
	Filters   []string `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// Formatter configures a record layout. Class is set when the host should use
// a formatter implementation other than the stock one.
type Formatter struct {
	Format string `json:"format" yaml:"format"`
	Class  string `json:"class,omitempty" yaml:"class,omitempty"`
}

// Filter names the factory callable the host invokes to instantiate the
// filter; dictConfig spells that key "()".
type Filter struct {
	Factory string `json:"()" yaml:"()"`
}

// Clone returns a deep copy of the configuration, for callers that hand the
// mapping to code they do not control.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{
		Version:                c.Version,
		DisableExistingLoggers: c.DisableExistingLoggers,
		Root:                   c.Root.clone(),
	}
	if c.Formatters != nil {
		out.Formatters = make(map[string]*Formatter, len(c.Formatters))
		for name, f := range c.Formatters {
			out.Formatters[name] = f.clone()
		}
	}
	if c.Filters != nil {
		out.Filters = make(map[string]*Filter, len(c.Filters))
		for name, f := range c.Filters {
			out.Filters[name] = f.clone()
		}
	}
	if c.Handlers != nil {
		out.Handlers = make(map[string]*Handler, len(c.Handlers))
		for name, h := range c.Handlers {
			out.Handlers[name] = h.clone()
		}
	}
	if c.Loggers != nil {
		out.Loggers = make(map[string]*Logger, len(c.Loggers))
		for name, l := range c.Loggers {
			out.Loggers[name] = l.clone()
		}
	}
	return out
}

func (h *Handler) clone() *Handler {
	if h == nil {
		return nil
	}
	out := *h
	out.Filters = cloneStrings(h.Filters)
	out.Enabled = cloneBool(h.Enabled)
	return &out
}

func (l *Logger) clone() *Logger {
	if l == nil {
		return nil
	}
	out := *l
	out.Handlers = cloneStrings(l.Handlers)
	out.Filters = cloneStrings(l.Filters)
	out.Propagate = cloneBool(l.Propagate)
	return &out
}

func (f *Formatter) clone() *Formatter {
	if f == nil {
		return nil
	}
	out := *f
	return &out
}

func (f *Filter) clone() *Filter {
	if f == nil {
		return nil
	}
	out := *f
	return &out
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func cloneBool(src *bool) *bool {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
